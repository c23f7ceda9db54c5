// Package normalize holds the small string clean-ups applied to form and
// JSON input before it is validated or stored. Every function here is
// idempotent: applying it twice gives the same result as applying it once.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Name trims a personal name, collapses inner whitespace runs to a single
// space and composes accents (NFC), so "Jose" plus a combining acute is
// stored as "José". Case is preserved.
func Name(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// Kind lowercases and trims a kind or type identifier.
func Kind(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OptionalText trims *s and returns nil when nothing is left.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// IDList trims every entry and drops blank ones. A nil or all-blank input
// yields nil.
func IDList(ids []string) []string {
	var out []string
	for _, id := range ids {
		if t := strings.TrimSpace(id); t != "" {
			out = append(out, t)
		}
	}
	return out
}

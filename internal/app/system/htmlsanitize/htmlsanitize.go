// Package htmlsanitize cleans user-supplied rich text before it is
// validated or stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// notesPolicy allows the light formatting the admin notes editor produces.
var notesPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "b", "i", "u", "ul", "ol", "li", "blockquote")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}()

var strictPolicy = bluemonday.StrictPolicy()

// Notes sanitizes a notes value. Formatting tags survive; scripts, styles,
// event handlers and unsafe URLs do not.
func Notes(s string) string {
	if s == "" {
		return ""
	}
	return notesPolicy.Sanitize(s)
}

// NotesPtr is Notes for optional values. nil stays nil.
func NotesPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Notes(*s)
	return &out
}

// StripTags removes all markup and returns plain text with entities
// decoded.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}

// internal/app/system/search/search.go
package search

import (
	"strings"
	"unicode"
)

// minDocumentPrefix is the shortest all-digit query treated as a document
// number. Shorter digit runs stay name searches.
const minDocumentPrefix = 3

// DocumentPivotOK reports whether a people search should match on document
// number instead of the folded full name.
//
// We pivot when the query is only digits (spaces and dots, as typed in
// "12.345.678", are ignored) and long enough to be selective on the
// document_number index.
//
//	if search.DocumentPivotOK(q) {
//	    filter["document_number"] = prefix(search.DocumentPrefix(q))
//	}
func DocumentPivotOK(q string) bool {
	return len(DocumentPrefix(q)) >= minDocumentPrefix
}

// DocumentPrefix strips the separators people type into document numbers
// and returns the remaining digits, or "" if anything else is present.
func DocumentPrefix(q string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(q) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || unicode.IsSpace(r):
		default:
			return ""
		}
	}
	return b.String()
}

package personval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"golang.org/x/text/cases"
)

// MaxFullNameLen bounds first + " " + last.
const MaxFullNameLen = 150

// Diagnostic is an advisory note about a draft. Diagnostics are reported
// alongside the result and never affect validity.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const DiagTeacherWithoutDocument = "teacher_without_document"

// EvaluateRules runs the general person rules followed by the rules for
// kind. d should already be normalized. Kinds without specific rules only
// get the general ones.
func EvaluateRules(kind models.PersonKind, d Draft) []entityval.RuleViolation {
	out := generalRules(d)
	if kind == models.PersonKindStudent {
		out = append(out, studentRules(d)...)
	}
	return out
}

func generalRules(d Draft) []entityval.RuleViolation {
	var out []entityval.RuleViolation
	if d.FirstName != "" && sameName(d.FirstName, d.LastName) {
		out = append(out, entityval.Error("First name and last name must not be identical."))
	}
	if utf8.RuneCountInString(d.FullName()) > MaxFullNameLen {
		out = append(out, entityval.Error(fmt.Sprintf("Full name must not exceed %d characters.", MaxFullNameLen)))
	}
	return out
}

// Grade duplicates the student schema check for callers that validated
// against the base schema before the kind was known.
func studentRules(d Draft) []entityval.RuleViolation {
	if strings.TrimSpace(d.Grade) == "" {
		return []entityval.RuleViolation{entityval.Error("Students must have a grade.")}
	}
	return nil
}

// sameName compares with full Unicode case folding. A Caser is stateful,
// so each call builds its own.
func sameName(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Diagnostics returns the advisory notes for a normalized draft.
func Diagnostics(kind models.PersonKind, d Draft) []Diagnostic {
	var out []Diagnostic
	if kind == models.PersonKindTeacher && d.DocumentNumber == "" {
		out = append(out, Diagnostic{
			Code:    DiagTeacherWithoutDocument,
			Message: "Teacher has no document number on file.",
		})
	}
	return out
}

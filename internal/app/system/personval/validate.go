package personval

import (
	"strings"

	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/app/system/normalize"
)

// Outcome is the result of validating one person draft.
type Outcome struct {
	Resolution  kindresolve.Resolution     `json:"resolution"`
	Result      entityval.ValidationResult `json:"result"`
	Cleaned     Draft                      `json:"cleaned"`
	Diagnostics []Diagnostic               `json:"diagnostics,omitempty"`
}

// Normalize collapses whitespace in names, lowercases the kind name and
// reference, and trims the rest. It is idempotent.
func Normalize(d Draft) Draft {
	return Draft{
		FirstName:      normalize.Name(d.FirstName),
		LastName:       normalize.Name(d.LastName),
		KindName:       normalize.Kind(d.KindName),
		KindRef:        strings.ToLower(normalize.Text(d.KindRef)),
		DocumentNumber: normalize.Text(d.DocumentNumber),
		Grade:          normalize.Text(d.Grade),
	}
}

// Clean is what callers persist. Persons carry no kind-specific fields, so
// it is Normalize.
func Clean(d Draft) Draft {
	return Normalize(d)
}

// Validate resolves the draft's kind against cat and runs the pipeline.
// cat may be nil.
func Validate(d Draft, cat kindresolve.Catalog) Outcome {
	norm := Normalize(d)
	rec := norm.Record()
	return ValidateAs(kindresolve.Resolve(&rec, cat), d)
}

// ValidateAs runs the pipeline for a kind the caller already resolved.
// Structure is checked on the normalized draft so collapsed whitespace
// counts toward the name bounds.
func ValidateAs(res kindresolve.Resolution, d Draft) Outcome {
	norm := Normalize(d)
	fieldErrs := SelectSchema(res.Kind).Check(norm)
	violations := EvaluateRules(res.Kind, norm)

	return Outcome{
		Resolution:  res,
		Result:      entityval.Aggregate(fieldErrs, violations),
		Cleaned:     norm,
		Diagnostics: Diagnostics(res.Kind, norm),
	}
}

package resourceval

import (
	"fmt"

	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/normalize"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// Outcome is the result of validating one draft. Cleaned is only
// meaningful to persist when Result.IsValid is true.
type Outcome struct {
	Kind    models.ResourceKind        `json:"kind"`
	Result  entityval.ValidationResult `json:"result"`
	Cleaned Draft                      `json:"cleaned"`
}

// ParseKind maps a submitted kind string (any case, surrounding space
// ignored) onto a ResourceKind.
func ParseKind(s string) (models.ResourceKind, error) {
	k := models.ResourceKind(normalize.Kind(s))
	if !k.Valid() {
		return "", fmt.Errorf("%w: resource kind %q", entityval.ErrUnsupportedKind, s)
	}
	return k, nil
}

// Validate runs the full pipeline over a client draft. An unrecognized kind
// string is reported as a single error on the kind field; nothing else is
// checked in that case.
func Validate(d Draft) Outcome {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		msg := "Kind is invalid."
		if normalize.Kind(d.Kind) == "" {
			msg = "Kind is required."
		}
		return Outcome{
			Result:  entityval.Aggregate(entityval.FieldErrors{string(FieldKind): msg}, nil),
			Cleaned: Normalize(d),
		}
	}

	out, err := ValidateKind(kind, d)
	if err != nil {
		// ParseKind only returns kinds every table knows about.
		panic(err)
	}
	return out
}

// ValidateKind runs the pipeline for a caller that already holds a typed
// kind. It fails only when kind is outside the closed set.
//
// The schema sees the cleaned draft, so whitespace-only optional values and
// fields the kind does not carry never produce field errors. The rules see
// the normalized draft before projection, so an ISBN on a game is still
// reported.
func ValidateKind(kind models.ResourceKind, d Draft) (Outcome, error) {
	schema, err := SelectSchema(kind)
	if err != nil {
		return Outcome{}, err
	}

	norm := Normalize(d)
	violations, err := EvaluateRules(kind, norm)
	if err != nil {
		return Outcome{}, err
	}
	cleaned, err := Project(kind, norm)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Kind:    kind,
		Result:  entityval.Aggregate(schema.Check(cleaned), violations),
		Cleaned: cleaned,
	}, nil
}

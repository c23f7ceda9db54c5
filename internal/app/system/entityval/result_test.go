package entityval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		fieldErrs  FieldErrors
		violations []RuleViolation
		wantValid  bool
	}{
		{"empty", nil, nil, true},
		{"warnings only", nil, []RuleViolation{Warning("long title")}, true},
		{"field error", FieldErrors{"title": "Title is required."}, nil, false},
		{"rule error", nil, []RuleViolation{Warning("w"), Error("e")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.fieldErrs, tt.violations)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			if got.FieldErrors == nil || got.RuleViolations == nil {
				t.Error("Aggregate should never return nil collections")
			}
		})
	}
}

func TestAggregate_DoesNotAlias(t *testing.T) {
	fe := FieldErrors{"title": "Title is required."}
	vs := []RuleViolation{Error("x")}
	res := Aggregate(fe, vs)

	fe["kind"] = "changed later"
	vs[0].Message = "mutated"

	if _, ok := res.FieldErrors["kind"]; ok {
		t.Error("result field errors alias the input map")
	}
	if res.RuleViolations[0].Message != "x" {
		t.Error("result violations alias the input slice")
	}
}

func TestResult_ErrorsAndWarnings(t *testing.T) {
	res := Aggregate(nil, []RuleViolation{Error("a"), Warning("b"), Error("c")})
	if diff := cmp.Diff([]RuleViolation{Error("a"), Error("c")}, res.Errors()); diff != "" {
		t.Errorf("Errors() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]RuleViolation{Warning("b")}, res.Warnings()); diff != "" {
		t.Errorf("Warnings() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize(t *testing.T) {
	res := Aggregate(nil, []RuleViolation{
		Error("Games must not carry an ISBN."),
		Warning("Title is longer than 200 characters."),
		Error("Notes must not contain promotional content."),
		Warning("Unusual number of volumes for this kind."),
		Error("Books must have at least one author."),
		Error("El tipo no coincide."),
	})

	want := Summary{
		Critical: []RuleViolation{
			Error("Games must not carry an ISBN."),
			Warning("Unusual number of volumes for this kind."),
			Error("Books must have at least one author."),
			Error("El tipo no coincide."),
		},
		Errors:   []RuleViolation{Error("Notes must not contain promotional content.")},
		Warnings: []RuleViolation{Warning("Title is longer than 200 characters.")},
	}
	if diff := cmp.Diff(want, Summarize(res)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsCritical(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"ISBN checksum is invalid.", true},
		{"isbn missing", true},
		{"Falta el autor.", true},
		{"Books must have at least one author.", true},
		{"Tipo desconocido", true},
		{"Unknown kind", true},
		{"Unusual number of volumes for this kind.", true},
		{"Lista de autores incompleta", true},
		{"ISBN-13 expected", true},
		{"Notes describe a prototipo.", false},
		{"Thanks for your kindness.", false},
		{"Authorship unclear", false},
		{"Autoría dudosa", false},
		{"Title is long.", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := IsCritical(tt.msg); got != tt.want {
				t.Errorf("IsCritical(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

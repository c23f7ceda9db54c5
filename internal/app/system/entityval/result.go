package entityval

import (
	"errors"
	"regexp"
)

// ErrUnsupportedKind is returned when a typed kind value outside the closed
// set reaches an operation that needs an exact kind. It signals a caller
// bug, not bad user input.
var ErrUnsupportedKind = errors.New("unsupported kind")

// Severity says whether a violation blocks acceptance.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// RuleViolation is a business-rule failure found after structural checks.
type RuleViolation struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Error builds an error-severity violation.
func Error(msg string) RuleViolation { return RuleViolation{Message: msg, Severity: SeverityError} }

// Warning builds a warning-severity violation.
func Warning(msg string) RuleViolation { return RuleViolation{Message: msg, Severity: SeverityWarning} }

// FieldErrors maps a JSON field path to its structural error message.
type FieldErrors map[string]string

// ValidationResult is the outcome of validating one draft.
type ValidationResult struct {
	IsValid        bool            `json:"is_valid"`
	FieldErrors    FieldErrors     `json:"field_errors"`
	RuleViolations []RuleViolation `json:"rule_violations"`
}

// Aggregate merges structural errors and rule violations. The result is
// valid iff there are no field errors and no error-severity violations.
// Inputs are copied; the result never aliases them.
func Aggregate(fieldErrs FieldErrors, violations []RuleViolation) ValidationResult {
	res := ValidationResult{
		FieldErrors:    make(FieldErrors, len(fieldErrs)),
		RuleViolations: make([]RuleViolation, 0, len(violations)),
	}
	for k, v := range fieldErrs {
		res.FieldErrors[k] = v
	}
	res.RuleViolations = append(res.RuleViolations, violations...)

	res.IsValid = len(res.FieldErrors) == 0
	for _, v := range res.RuleViolations {
		if v.Severity == SeverityError {
			res.IsValid = false
			break
		}
	}
	return res
}

// Errors returns the error-severity violations.
func (r ValidationResult) Errors() []RuleViolation {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity violations.
func (r ValidationResult) Warnings() []RuleViolation {
	return r.filter(SeverityWarning)
}

func (r ValidationResult) filter(s Severity) []RuleViolation {
	var out []RuleViolation
	for _, v := range r.RuleViolations {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}

// criticalKeywords mark violations about the fields that decide what a
// record is. Spanish forms are kept because catalog data and older clients
// still produce them. Only whole words count, so "prototipo" is not a match.
// Boundaries are Unicode letters and digits since \b only knows ASCII.
var criticalKeywords = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:isbn|autor(?:es)?|authors?|tipos?|kinds?)(?:$|[^\p{L}\p{N}_])`)

// Summary partitions violations for display. Critical holds anything that
// mentions a critical keyword regardless of severity; Errors and Warnings
// hold the rest by severity.
type Summary struct {
	Critical []RuleViolation `json:"critical"`
	Errors   []RuleViolation `json:"errors"`
	Warnings []RuleViolation `json:"warnings"`
}

// Summarize partitions r's violations into a Summary, preserving order.
func Summarize(r ValidationResult) Summary {
	var s Summary
	for _, v := range r.RuleViolations {
		switch {
		case IsCritical(v.Message):
			s.Critical = append(s.Critical, v)
		case v.Severity == SeverityError:
			s.Errors = append(s.Errors, v)
		default:
			s.Warnings = append(s.Warnings, v)
		}
	}
	return s
}

// IsCritical reports whether msg mentions a critical keyword as a word.
func IsCritical(msg string) bool {
	return criticalKeywords.MatchString(msg)
}

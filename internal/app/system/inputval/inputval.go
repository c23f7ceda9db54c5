// Package inputval performs struct-tag driven structural validation of
// form and JSON input and turns failures into user-facing messages.
//
// Structs declare rules with `validate` tags (go-playground/validator) and
// a human label with a `label` tag:
//
//	type input struct {
//	    Title string `json:"title" validate:"notblank,max=255" label:"Title"`
//	}
//
// Besides the validator built-ins, the following tags are registered:
//   - notblank:   string must contain a non-space character
//   - personname: letters and spaces only
//   - isbnshape:  ISBN-10 or ISBN-13 shape (hyphens and spaces ignored)
//   - docnumber:  6 to 11 digits
//   - objectid:   24 hex characters
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	personNameRe = regexp.MustCompile(`^\p{L}[\p{L}\p{M} ]*$`)
	docNumberRe  = regexp.MustCompile(`^[0-9]{6,11}$`)
	isbnShapeRe  = regexp.MustCompile(`^(?:[0-9]{9}[0-9X]|[0-9]{13})$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so paths match the request payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return IsPersonName(fl.Field().String())
	})
	mustRegister(v, "isbnshape", func(fl validator.FieldLevel) bool {
		return IsISBNShape(fl.Field().String())
	})
	mustRegister(v, "docnumber", func(fl validator.FieldLevel) bool {
		return docNumberRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "objectid", func(fl validator.FieldLevel) bool {
		return IsValidObjectID(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %q: %v", tag, err))
	}
}

// FieldError is a single structural failure.
type FieldError struct {
	Field   string // JSON path, e.g. "title" or "authors[1]"
	Label   string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether validation failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first message, or "" when there are none.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the first message reported for each field path.
func (r *Result) ByField() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Validate checks s (a struct or pointer to struct) against its tags.
func Validate(s any) Result {
	err := validate.Struct(s)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: caller passed something that isn't a struct.
		return Result{Errors: []FieldError{{Message: err.Error()}}}
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	res := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		path := trimRoot(fe.Namespace())
		label := labelFor(t, fe)
		res.Errors = append(res.Errors, FieldError{
			Field:   path,
			Label:   label,
			Message: message(label, fe),
		})
	}
	return res
}

// Var checks a single value against a tag expression, e.g. Var(s, "isbn").
func Var(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

// IsPersonName reports whether s consists of letters and spaces only.
func IsPersonName(s string) bool {
	return personNameRe.MatchString(s)
}

// CompactISBN strips hyphens and spaces and uppercases a trailing x.
func CompactISBN(s string) string {
	s = strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s))
	return strings.ToUpper(s)
}

// IsISBNShape reports whether s looks like an ISBN-10 or ISBN-13. It does
// not verify the check digit; see IsValidISBN.
func IsISBNShape(s string) bool {
	return isbnShapeRe.MatchString(CompactISBN(s))
}

// IsValidISBN reports whether s is an ISBN-10 or ISBN-13 with a correct
// check digit.
func IsValidISBN(s string) bool {
	c := CompactISBN(s)
	if !isbnShapeRe.MatchString(c) {
		return false
	}
	return Var(c, "isbn")
}

// IsValidObjectID reports whether id is a 24-char hex MongoDB ObjectID.
func IsValidObjectID(id string) bool {
	id = strings.TrimSpace(id)
	if len(id) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(strings.ToLower(id))
	return err == nil
}

// trimRoot drops the leading struct name from a validator namespace.
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// labelFor resolves the `label` tag of the top-level field behind fe.
func labelFor(t reflect.Type, fe validator.FieldError) string {
	name := trimRoot(fe.StructNamespace())
	name, _, _ = strings.Cut(name, ".")
	base, _, indexed := strings.Cut(name, "[")

	label := fe.Field()
	if t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(base); ok {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
	}
	if indexed {
		label += " entry"
	}
	return label
}

func message(label string, fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required.", label)
	case "min", "gte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must have at least %s item(s).", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max", "lte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must have at most %s item(s).", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "personname":
		return fmt.Sprintf("%s may only contain letters and spaces.", label)
	case "isbnshape":
		return fmt.Sprintf("%s must be a valid ISBN-10 or ISBN-13.", label)
	case "docnumber":
		return fmt.Sprintf("%s must contain 6 to 11 digits.", label)
	case "objectid":
		return fmt.Sprintf("%s must be a valid ID.", label)
	}
	return fmt.Sprintf("%s is invalid.", label)
}

package entityval

import "github.com/dalemusser/stratalibrary/internal/app/system/inputval"

// Schema is the structural ruleset for one kind of draft T. It binds the
// draft onto a tagged struct and runs inputval over it, so a Schema only
// ever sees shape (lengths, patterns, ranges, presence), never meaning.
type Schema[T any] struct {
	name string
	bind func(T) any
}

// NewSchema builds a Schema. bind must return a struct (or pointer to one)
// carrying `validate` and `label` tags.
func NewSchema[T any](name string, bind func(T) any) Schema[T] {
	return Schema[T]{name: name, bind: bind}
}

// Name identifies the schema, e.g. "resource.book".
func (s Schema[T]) Name() string { return s.name }

// Check runs the structural rules and returns one message per failing
// field path. An empty map means the draft is structurally sound.
func (s Schema[T]) Check(draft T) FieldErrors {
	res := inputval.Validate(s.bind(draft))
	return FieldErrors(res.ByField())
}

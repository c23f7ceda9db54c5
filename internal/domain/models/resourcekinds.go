// internal/domain/models/resourcekinds.go
package models

// ResourceKind identifies which family a Resource belongs to.
//
// These values are stored in the database in the Resource.Kind field and are
// used throughout the application as stable, language-agnostic keys.
type ResourceKind string

const (
	ResourceKindBook  ResourceKind = "book"
	ResourceKindGame  ResourceKind = "game"
	ResourceKindMap   ResourceKind = "map"
	ResourceKindBible ResourceKind = "bible"
)

// ResourceKinds is the full set of allowed resource kinds.
//
// This slice is the single source of truth for validation and schema enums.
// Any new kind must be added here (and to every exhaustive switch over
// ResourceKind) to be considered valid.
var ResourceKinds = []ResourceKind{
	ResourceKindBook,
	ResourceKindGame,
	ResourceKindMap,
	ResourceKindBible,
}

// Valid reports whether k is one of ResourceKinds.
func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceKindBook, ResourceKindGame, ResourceKindMap, ResourceKindBible:
		return true
	}
	return false
}

// Label returns the human-facing name of the kind.
func (k ResourceKind) Label() string {
	switch k {
	case ResourceKindBook:
		return "Book"
	case ResourceKindGame:
		return "Game"
	case ResourceKindMap:
		return "Map"
	case ResourceKindBible:
		return "Bible"
	}
	return string(k)
}

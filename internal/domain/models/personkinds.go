// internal/domain/models/personkinds.go
package models

// PersonKind identifies which family a Person belongs to.
type PersonKind string

const (
	PersonKindStudent PersonKind = "student"
	PersonKindTeacher PersonKind = "teacher"
	// PersonKindCustom is a catalog-defined kind that is neither student
	// nor teacher. Its display label comes from the catalog entry.
	PersonKindCustom  PersonKind = "custom"
	PersonKindUnknown PersonKind = "unknown"
)

// PersonKinds lists every stored person kind.
var PersonKinds = []PersonKind{
	PersonKindStudent,
	PersonKindTeacher,
	PersonKindCustom,
	PersonKindUnknown,
}

// Valid reports whether k is one of PersonKinds.
func (k PersonKind) Valid() bool {
	switch k {
	case PersonKindStudent, PersonKindTeacher, PersonKindCustom, PersonKindUnknown:
		return true
	}
	return false
}

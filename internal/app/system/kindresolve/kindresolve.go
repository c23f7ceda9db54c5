// Package kindresolve works out what kind of person a record describes when
// the kind is not (or not directly) on the record.
//
// Resolution walks an ordered chain of strategies and stops at the first
// one that matches, so stronger signals always win over weaker ones:
//
//  1. PopulatedName : the record already carries a known kind name (exact)
//  2. CatalogLookup : the kind reference resolves in the catalog to a known name (exact)
//  3. CatalogCustom : the reference resolves to an entry with any other name (custom)
//  4. GradeHeuristic: a non-blank grade means student, otherwise teacher (heuristic)
//
// A nil record resolves to Unknown with confidence none.
package kindresolve

import (
	"strings"

	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// Confidence says how authoritative a resolution is.
type Confidence string

const (
	ConfidenceExact     Confidence = "exact"
	ConfidenceCustom    Confidence = "custom"
	ConfidenceHeuristic Confidence = "heuristic"
	ConfidenceNone      Confidence = "none"
)

// Display is how the resolved kind should be shown. Tentative is set for
// heuristic and none resolutions; UIs should present those as a best guess.
type Display struct {
	Label     string `json:"label"`
	Badge     string `json:"badge"`
	Tentative bool   `json:"tentative"`
}

// Resolution is the outcome of resolving a record's kind.
type Resolution struct {
	Kind       models.PersonKind `json:"kind"`
	Confidence Confidence        `json:"confidence"`
	Display    Display           `json:"display"`
	Strategy   string            `json:"strategy,omitempty"`
}

// Record is the subset of a person draft the resolver reads.
type Record struct {
	KindName string // populated kind name, when the caller already joined it
	KindRef  string // person_types id (hex)
	Grade    string
}

// RecordFromPerson builds a Record from a stored person.
func RecordFromPerson(p models.Person) Record {
	rec := Record{KindName: string(p.Kind), Grade: p.Grade}
	if p.PersonTypeID != nil {
		rec.KindRef = p.PersonTypeID.Hex()
	}
	return rec
}

// Catalog is a caller-owned snapshot of person_types. The resolver only
// reads it.
type Catalog []models.PersonType

// Lookup finds the entry whose id matches ref (hex, case-insensitive).
func (c Catalog) Lookup(ref string) (models.PersonType, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return models.PersonType{}, false
	}
	for _, pt := range c {
		if pt.ID.Hex() == ref {
			return pt, true
		}
	}
	return models.PersonType{}, false
}

// knownNames maps accepted catalog/kind names onto the built-in kinds.
var knownNames = map[string]models.PersonKind{
	"student":    models.PersonKindStudent,
	"estudiante": models.PersonKindStudent,
	"alumno":     models.PersonKindStudent,
	"teacher":    models.PersonKindTeacher,
	"profesor":   models.PersonKindTeacher,
	"docente":    models.PersonKindTeacher,
}

// KnownKind maps a kind name (any case, surrounding space ignored) onto
// Student or Teacher.
func KnownKind(name string) (models.PersonKind, bool) {
	k, ok := knownNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// DisplayFor returns the default display for kind. label is used for
// custom kinds only.
func DisplayFor(kind models.PersonKind, label string, c Confidence) Display {
	d := Display{Tentative: c == ConfidenceHeuristic || c == ConfidenceNone}
	switch kind {
	case models.PersonKindStudent:
		d.Label, d.Badge = "Student", "blue"
	case models.PersonKindTeacher:
		d.Label, d.Badge = "Teacher", "green"
	case models.PersonKindCustom:
		d.Label, d.Badge = label, "purple"
	default:
		d.Label, d.Badge = "Unknown", "gray"
	}
	return d
}

func resolved(kind models.PersonKind, c Confidence, label string) Resolution {
	return Resolution{Kind: kind, Confidence: c, Display: DisplayFor(kind, label, c)}
}

// Unknown is the resolution used when there is nothing to go on.
func Unknown() Resolution {
	return resolved(models.PersonKindUnknown, ConfidenceNone, "")
}

package kindresolve

import (
	"strings"

	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// Strategy is one tier of the resolution chain. Resolve returns ok=false
// when the strategy has nothing to say about rec.
type Strategy interface {
	Name() string
	Resolve(rec Record, cat Catalog) (Resolution, bool)
}

// Chain tries its strategies in order; the first match wins.
type Chain []Strategy

// DefaultChain is the precedence used across the app.
var DefaultChain = Chain{PopulatedName{}, CatalogLookup{}, CatalogCustom{}, GradeHeuristic{}}

// Resolve walks the chain. A nil record, or one no strategy matches,
// resolves to Unknown.
func (c Chain) Resolve(rec *Record, cat Catalog) Resolution {
	if rec == nil {
		return Unknown()
	}
	for _, s := range c {
		if res, ok := s.Resolve(*rec, cat); ok {
			res.Strategy = s.Name()
			return res
		}
	}
	return Unknown()
}

// Resolve resolves rec with DefaultChain.
func Resolve(rec *Record, cat Catalog) Resolution {
	return DefaultChain.Resolve(rec, cat)
}

// PopulatedName uses a kind name already present on the record.
type PopulatedName struct{}

func (PopulatedName) Name() string { return "populated_name" }

func (PopulatedName) Resolve(rec Record, _ Catalog) (Resolution, bool) {
	kind, ok := KnownKind(rec.KindName)
	if !ok {
		return Resolution{}, false
	}
	return resolved(kind, ConfidenceExact, ""), true
}

// CatalogLookup resolves the kind reference through the catalog and
// matches when the entry's name is a known kind.
type CatalogLookup struct{}

func (CatalogLookup) Name() string { return "catalog_lookup" }

func (CatalogLookup) Resolve(rec Record, cat Catalog) (Resolution, bool) {
	entry, ok := cat.Lookup(rec.KindRef)
	if !ok {
		return Resolution{}, false
	}
	kind, ok := KnownKind(entry.Name)
	if !ok {
		return Resolution{}, false
	}
	return resolved(kind, ConfidenceExact, ""), true
}

// CatalogCustom matches a catalog entry whose name is not a known kind and
// labels the result with the entry's description (or name, if the
// description is blank).
type CatalogCustom struct{}

func (CatalogCustom) Name() string { return "catalog_custom" }

func (CatalogCustom) Resolve(rec Record, cat Catalog) (Resolution, bool) {
	entry, ok := cat.Lookup(rec.KindRef)
	if !ok {
		return Resolution{}, false
	}
	if _, known := KnownKind(entry.Name); known {
		return Resolution{}, false
	}
	label := strings.TrimSpace(entry.Description)
	if label == "" {
		label = strings.TrimSpace(entry.Name)
	}
	return resolved(models.PersonKindCustom, ConfidenceCustom, label), true
}

// GradeHeuristic guesses from the grade field: non-blank means student,
// anything else teacher. A student whose grade was left blank is
// misclassified as a teacher; the heuristic confidence is the only signal
// of that.
type GradeHeuristic struct{}

func (GradeHeuristic) Name() string { return "grade_heuristic" }

func (GradeHeuristic) Resolve(rec Record, _ Catalog) (Resolution, bool) {
	if strings.TrimSpace(rec.Grade) != "" {
		return resolved(models.PersonKindStudent, ConfidenceHeuristic, ""), true
	}
	return resolved(models.PersonKindTeacher, ConfidenceHeuristic, ""), true
}

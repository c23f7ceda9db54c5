package resourceval

import (
	"fmt"
	"slices"

	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/normalize"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// Field names a draft field by its JSON key.
type Field string

const (
	FieldTitle       Field = "title"
	FieldKind        Field = "kind"
	FieldCategoryID  Field = "category_id"
	FieldStateID     Field = "state_id"
	FieldLocationID  Field = "location_id"
	FieldVolumes     Field = "volumes"
	FieldISBN        Field = "isbn"
	FieldAuthorIDs   Field = "author_ids"
	FieldPublisherID Field = "publisher_id"
	FieldNotes       Field = "notes"
)

var commonFields = []Field{
	FieldTitle, FieldKind, FieldCategoryID, FieldStateID, FieldLocationID,
	FieldVolumes, FieldPublisherID, FieldNotes,
}

// kindFields lists the fields that only some kinds carry. It drives both
// Project and the field-visibility endpoint.
var kindFields = map[models.ResourceKind][]Field{
	models.ResourceKindBook:  {FieldISBN, FieldAuthorIDs},
	models.ResourceKindBible: {FieldISBN, FieldAuthorIDs},
	models.ResourceKindGame:  {},
	models.ResourceKindMap:   {},
}

// ApplicableFields returns every field a resource of kind may carry.
func ApplicableFields(kind models.ResourceKind) ([]Field, error) {
	extra, ok := kindFields[kind]
	if !ok {
		return nil, fmt.Errorf("%w: resource kind %q", entityval.ErrUnsupportedKind, kind)
	}
	return append(slices.Clone(commonFields), extra...), nil
}

// Normalize trims every string, drops blank author IDs and turns notes that
// are empty after trimming into nil. It does not look at the kind.
func Normalize(d Draft) Draft {
	return Draft{
		Title:       normalize.Text(d.Title),
		Kind:        normalize.Kind(d.Kind),
		CategoryID:  normalize.Text(d.CategoryID),
		StateID:     normalize.Text(d.StateID),
		LocationID:  normalize.Text(d.LocationID),
		Volumes:     d.Volumes,
		ISBN:        normalize.Text(d.ISBN),
		AuthorIDs:   normalize.IDList(d.AuthorIDs),
		PublisherID: normalize.Text(d.PublisherID),
		Notes:       normalize.OptionalText(d.Notes),
	}
}

// Project clears the kind-specific fields that do not apply to kind,
// whatever the caller supplied.
func Project(kind models.ResourceKind, d Draft) (Draft, error) {
	extra, ok := kindFields[kind]
	if !ok {
		return Draft{}, fmt.Errorf("%w: resource kind %q", entityval.ErrUnsupportedKind, kind)
	}
	d.Kind = string(kind)
	if !slices.Contains(extra, FieldISBN) {
		d.ISBN = ""
	}
	if !slices.Contains(extra, FieldAuthorIDs) {
		d.AuthorIDs = nil
	}
	return d, nil
}

// Clean normalizes d and projects it onto kind. Clean is idempotent.
func Clean(kind models.ResourceKind, d Draft) (Draft, error) {
	return Project(kind, Normalize(d))
}

package resourceval

import (
	"fmt"

	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// Volume bounds enforced by every resource schema (gte/lte tags below).
const (
	MinVolumes = 1
	MaxVolumes = 100
)

// bookSchema requires at least one author and checks ISBN shape.
type bookSchema struct {
	Title       string   `json:"title" validate:"notblank,max=255" label:"Title"`
	CategoryID  string   `json:"category_id" validate:"notblank" label:"Category"`
	StateID     string   `json:"state_id" validate:"notblank" label:"State"`
	LocationID  string   `json:"location_id" validate:"notblank" label:"Location"`
	Volumes     int      `json:"volumes" validate:"gte=1,lte=100" label:"Volumes"`
	ISBN        string   `json:"isbn" validate:"omitempty,isbnshape" label:"ISBN"`
	AuthorIDs   []string `json:"author_ids" validate:"min=1,dive,notblank" label:"Authors"`
	PublisherID string   `json:"publisher_id" validate:"omitempty,max=100" label:"Publisher"`
	Notes       *string  `json:"notes" validate:"omitempty,max=1000" label:"Notes"`
}

// otherSchema is the shared base used for games, maps and bibles. Author
// cardinality is not checked and ISBN is left to the rule engine.
type otherSchema struct {
	Title       string   `json:"title" validate:"notblank,max=255" label:"Title"`
	CategoryID  string   `json:"category_id" validate:"notblank" label:"Category"`
	StateID     string   `json:"state_id" validate:"notblank" label:"State"`
	LocationID  string   `json:"location_id" validate:"notblank" label:"Location"`
	Volumes     int      `json:"volumes" validate:"gte=1,lte=100" label:"Volumes"`
	AuthorIDs   []string `json:"author_ids" validate:"omitempty,dive,notblank" label:"Authors"`
	PublisherID string   `json:"publisher_id" validate:"omitempty,max=100" label:"Publisher"`
	Notes       *string  `json:"notes" validate:"omitempty,max=1000" label:"Notes"`
}

var (
	bookResourceSchema = entityval.NewSchema("resource.book", func(d Draft) any {
		return bookSchema{
			Title:       d.Title,
			CategoryID:  d.CategoryID,
			StateID:     d.StateID,
			LocationID:  d.LocationID,
			Volumes:     d.Volumes,
			ISBN:        d.ISBN,
			AuthorIDs:   d.AuthorIDs,
			PublisherID: d.PublisherID,
			Notes:       d.Notes,
		}
	})
	otherResourceSchema = entityval.NewSchema("resource.other", func(d Draft) any {
		return otherSchema{
			Title:       d.Title,
			CategoryID:  d.CategoryID,
			StateID:     d.StateID,
			LocationID:  d.LocationID,
			Volumes:     d.Volumes,
			AuthorIDs:   d.AuthorIDs,
			PublisherID: d.PublisherID,
			Notes:       d.Notes,
		}
	})
)

// SelectSchema returns the structural schema for kind.
func SelectSchema(kind models.ResourceKind) (entityval.Schema[Draft], error) {
	switch kind {
	case models.ResourceKindBook:
		return bookResourceSchema, nil
	case models.ResourceKindGame, models.ResourceKindMap, models.ResourceKindBible:
		return otherResourceSchema, nil
	}
	return entityval.Schema[Draft]{}, fmt.Errorf("%w: resource kind %q", entityval.ErrUnsupportedKind, kind)
}

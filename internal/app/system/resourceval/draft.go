// Package resourceval validates candidate Resource payloads.
//
// Validation runs in a fixed order: the kind is parsed, the kind's schema
// checks structure on the raw draft, the draft is normalized, business
// rules run on the normalized draft, and finally fields that do not apply
// to the kind are projected away. The projected draft is what callers
// persist.
package resourceval

import "github.com/dalemusser/stratalibrary/internal/domain/models"

// Draft is the candidate data for a resource as submitted by a client.
// Empty strings mean "absent" for the optional string fields.
type Draft struct {
	Title       string   `json:"title"`
	Kind        string   `json:"kind"`
	CategoryID  string   `json:"category_id"`
	StateID     string   `json:"state_id"`
	LocationID  string   `json:"location_id"`
	Volumes     int      `json:"volumes"`
	ISBN        string   `json:"isbn,omitempty"`
	AuthorIDs   []string `json:"author_ids,omitempty"`
	PublisherID string   `json:"publisher_id,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// FromModel builds a Draft from a stored resource, e.g. to merge a partial
// update over it.
func FromModel(r models.Resource) Draft {
	d := Draft{
		Title:       r.Title,
		Kind:        string(r.Kind),
		CategoryID:  r.CategoryID,
		StateID:     r.StateID,
		LocationID:  r.LocationID,
		Volumes:     r.Volumes,
		ISBN:        r.ISBN,
		PublisherID: r.PublisherID,
	}
	if len(r.AuthorIDs) > 0 {
		d.AuthorIDs = append([]string(nil), r.AuthorIDs...)
	}
	if r.Notes != nil {
		n := *r.Notes
		d.Notes = &n
	}
	return d
}

// ToModel copies a cleaned draft into a Resource of the given kind. IDs and
// timestamps are left for the store to fill.
func (d Draft) ToModel(kind models.ResourceKind) models.Resource {
	return models.Resource{
		Title:       d.Title,
		Kind:        kind,
		CategoryID:  d.CategoryID,
		StateID:     d.StateID,
		LocationID:  d.LocationID,
		Volumes:     d.Volumes,
		ISBN:        d.ISBN,
		AuthorIDs:   d.AuthorIDs,
		PublisherID: d.PublisherID,
		Notes:       d.Notes,
	}
}

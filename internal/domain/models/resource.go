package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is a physical library item (book, game, map or bible).
//
// Stored documents always hold the cleaned payload: ISBN and AuthorIDs are
// empty for kinds that do not carry them (see resourceval.ApplicableFields).
type Resource struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"title_ci"` // lowercase, diacritics-stripped

	Kind ResourceKind `bson:"kind" json:"kind"`

	CategoryID string `bson:"category_id" json:"category_id"`
	StateID    string `bson:"state_id" json:"state_id"`
	LocationID string `bson:"location_id" json:"location_id"`

	Volumes int `bson:"volumes" json:"volumes"`

	ISBN        string   `bson:"isbn,omitempty" json:"isbn,omitempty"`
	AuthorIDs   []string `bson:"author_ids,omitempty" json:"author_ids,omitempty"`
	PublisherID string   `bson:"publisher_id,omitempty" json:"publisher_id,omitempty"`
	Notes       *string  `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

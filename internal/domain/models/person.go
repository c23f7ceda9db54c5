// internal/domain/models/person.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person is a student or teacher registered with the library.
//
// Kind holds the kind resolved at save time. PersonTypeID, when set, points
// at the person_types catalog entry the record was created against; the
// catalog may have changed since, so readers that care re-resolve via
// kindresolve.
type Person struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	LastName   string             `bson:"last_name" json:"last_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped

	Kind         PersonKind          `bson:"kind" json:"kind"`
	KindLabel    string              `bson:"kind_label,omitempty" json:"kind_label,omitempty"`
	PersonTypeID *primitive.ObjectID `bson:"person_type_id,omitempty" json:"person_type_id,omitempty"`

	DocumentNumber string `bson:"document_number,omitempty" json:"document_number,omitempty"`
	Grade          string `bson:"grade,omitempty" json:"grade,omitempty"` // grade for students, area for teachers

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

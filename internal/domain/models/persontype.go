// internal/domain/models/persontype.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonType is an entry in the person_types catalog. Name is matched against
// the known kinds (student, teacher and their aliases); anything else is
// treated as a custom kind described by Description.
type PersonType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

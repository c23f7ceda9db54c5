// Package personval validates candidate Person payloads.
//
// A person's kind is often not on the payload itself, so validation starts
// by resolving it with kindresolve against the caller's person type
// catalog. The resolved kind then picks the schema and the kind-specific
// rules. Teachers without a document number produce an advisory
// diagnostic, which never affects validity.
package personval

import (
	"strings"

	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draft is the candidate data for a person as submitted by a client.
type Draft struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	KindName       string `json:"kind,omitempty"`
	KindRef        string `json:"person_type_id,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	Grade          string `json:"grade,omitempty"`
}

// Record returns the fields the kind resolver reads.
func (d Draft) Record() kindresolve.Record {
	return kindresolve.Record{KindName: d.KindName, KindRef: d.KindRef, Grade: d.Grade}
}

// FromModel builds a Draft from a stored person.
func FromModel(p models.Person) Draft {
	d := Draft{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DocumentNumber: p.DocumentNumber,
		Grade:          p.Grade,
	}
	if p.Kind == models.PersonKindStudent || p.Kind == models.PersonKindTeacher {
		d.KindName = string(p.Kind)
	}
	if p.PersonTypeID != nil {
		d.KindRef = p.PersonTypeID.Hex()
	}
	return d
}

// ToModel copies a cleaned draft into a Person carrying the resolved kind.
// A malformed kind reference is dropped; structural validation reports it
// before anything is stored.
func (d Draft) ToModel(res kindresolve.Resolution) models.Person {
	p := models.Person{
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Kind:           res.Kind,
		DocumentNumber: d.DocumentNumber,
		Grade:          d.Grade,
	}
	if res.Kind == models.PersonKindCustom {
		p.KindLabel = res.Display.Label
	}
	if oid, err := primitive.ObjectIDFromHex(d.KindRef); err == nil {
		p.PersonTypeID = &oid
	}
	return p
}

// FullName joins first and last name with a single space.
func (d Draft) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

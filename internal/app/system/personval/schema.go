package personval

import (
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
)

// Name length bounds, applied to first and last name separately.
const (
	MinNameLen = 2
	MaxNameLen = 100
)

// baseSchema covers teachers, custom kinds and anything unresolved.
type baseSchema struct {
	FirstName      string `json:"first_name" validate:"notblank,min=2,max=100,personname" label:"First name"`
	LastName       string `json:"last_name" validate:"notblank,min=2,max=100,personname" label:"Last name"`
	KindRef        string `json:"person_type_id" validate:"omitempty,objectid" label:"Person type"`
	DocumentNumber string `json:"document_number" validate:"omitempty,docnumber" label:"Document number"`
	Grade          string `json:"grade" validate:"omitempty,max=50" label:"Grade"`
}

// studentSchema is baseSchema with a required grade.
type studentSchema struct {
	FirstName      string `json:"first_name" validate:"notblank,min=2,max=100,personname" label:"First name"`
	LastName       string `json:"last_name" validate:"notblank,min=2,max=100,personname" label:"Last name"`
	KindRef        string `json:"person_type_id" validate:"omitempty,objectid" label:"Person type"`
	DocumentNumber string `json:"document_number" validate:"omitempty,docnumber" label:"Document number"`
	Grade          string `json:"grade" validate:"notblank,max=50" label:"Grade"`
}

var (
	basePersonSchema = entityval.NewSchema("person.base", func(d Draft) any {
		return baseSchema{
			FirstName:      d.FirstName,
			LastName:       d.LastName,
			KindRef:        d.KindRef,
			DocumentNumber: d.DocumentNumber,
			Grade:          d.Grade,
		}
	})
	studentPersonSchema = entityval.NewSchema("person.student", func(d Draft) any {
		return studentSchema{
			FirstName:      d.FirstName,
			LastName:       d.LastName,
			KindRef:        d.KindRef,
			DocumentNumber: d.DocumentNumber,
			Grade:          d.Grade,
		}
	})
)

// SelectSchema returns the structural schema for a resolved kind. Every
// kind other than student gets the base schema, including values outside
// the known set.
func SelectSchema(kind models.PersonKind) entityval.Schema[Draft] {
	if kind == models.PersonKindStudent {
		return studentPersonSchema
	}
	return basePersonSchema
}

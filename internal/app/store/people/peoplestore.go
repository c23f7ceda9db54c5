// internal/app/store/people/peoplestore.go
package peoplestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratalibrary/internal/app/system/paging"
	"github.com/dalemusser/stratalibrary/internal/app/system/search"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound          = errors.New("person not found")
	ErrDuplicateDocument = errors.New("a person with this document number already exists")
)

// Store persists people. Callers validate with personval first.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("people")}
}

func fullNameCI(p models.Person) string {
	return text.Fold(p.FirstName + " " + p.LastName)
}

// Create inserts p, assigning the ID, FullNameCI and timestamps.
func (s *Store) Create(ctx context.Context, p models.Person) (models.Person, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.FullNameCI = fullNameCI(p)
	p.CreatedAt = now
	p.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Person{}, ErrDuplicateDocument
		}
		return models.Person{}, err
	}
	return p, nil
}

// Replace overwrites every mutable field of the person with p. Empty
// optional fields are removed from the document.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, p models.Person) (models.Person, error) {
	set := bson.M{
		"first_name":   p.FirstName,
		"last_name":    p.LastName,
		"full_name_ci": fullNameCI(p),
		"kind":         p.Kind,
		"updated_at":   time.Now().UTC(),
	}
	unset := bson.M{}
	optional := func(key string, present bool, v any) {
		if present {
			set[key] = v
		} else {
			unset[key] = ""
		}
	}
	optional("kind_label", p.KindLabel != "", p.KindLabel)
	optional("person_type_id", p.PersonTypeID != nil, p.PersonTypeID)
	optional("document_number", p.DocumentNumber != "", p.DocumentNumber)
	optional("grade", p.Grade != "", p.Grade)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var out models.Person
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Person{}, ErrNotFound
	case wafflemongo.IsDup(err):
		return models.Person{}, ErrDuplicateDocument
	case err != nil:
		return models.Person{}, err
	}
	return out, nil
}

// GetByID returns a person by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Person, error) {
	var p models.Person
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Person{}, ErrNotFound
		}
		return models.Person{}, err
	}
	return p, nil
}

// Delete removes a person by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Kind  models.PersonKind
	Query string // full name prefix, or document number prefix when all digits
}

func (f ListFilter) bson() bson.M {
	m := bson.M{}
	if f.Kind != "" {
		m["kind"] = f.Kind
	}
	if search.DocumentPivotOK(f.Query) {
		doc := search.DocumentPrefix(f.Query)
		m["document_number"] = bson.M{"$gte": doc, "$lt": doc + "\uffff"}
	} else if lo, hi := text.PrefixRange(f.Query); lo != "" {
		m["full_name_ci"] = bson.M{"$gte": lo, "$lt": hi}
	}
	return m
}

// List returns one page of people ordered by full name.
func (s *Store) List(ctx context.Context, f ListFilter, req paging.Request) (paging.Page[models.Person], error) {
	const sortField = "full_name_ci"
	ks := req.Configure()

	filter := f.bson()
	if win := ks.Window(sortField); win != nil {
		filter = bson.M{"$and": []bson.M{filter, win}}
	}
	find := options.Find()
	ks.ApplyToFind(find, sortField)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return paging.Page[models.Person]{}, err
	}
	defer cur.Close(ctx)

	var rows []models.Person
	if err := cur.All(ctx, &rows); err != nil {
		return paging.Page[models.Person]{}, err
	}
	return paging.Build(rows, ks,
		func(p models.Person) string { return p.FullNameCI },
		func(p models.Person) primitive.ObjectID { return p.ID },
	), nil
}

// CountByPersonType reports how many people reference a person type.
func (s *Store) CountByPersonType(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"person_type_id": id})
}

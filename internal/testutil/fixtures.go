package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test data directly, bypassing validation.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreatePersonType adds a person_types catalog entry.
func (f *Fixtures) CreatePersonType(ctx context.Context, name, description string) models.PersonType {
	f.t.Helper()
	pt := models.PersonType{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "person_types", pt)
	return pt
}

// CreatePerson adds a person of the given kind. grade may be empty.
func (f *Fixtures) CreatePerson(ctx context.Context, first, last string, kind models.PersonKind, grade string) models.Person {
	f.t.Helper()
	p := models.Person{
		ID:         primitive.NewObjectID(),
		FirstName:  first,
		LastName:   last,
		FullNameCI: text.Fold(first + " " + last),
		Kind:       kind,
		Grade:      grade,
		CreatedAt:  time.Now().UTC(),
	}
	f.insert(ctx, "people", p)
	return p
}

// CreateResource adds a resource of the given kind with one volume.
func (f *Fixtures) CreateResource(ctx context.Context, title string, kind models.ResourceKind) models.Resource {
	f.t.Helper()
	r := models.Resource{
		ID:         primitive.NewObjectID(),
		Title:      title,
		TitleCI:    text.Fold(title),
		Kind:       kind,
		CategoryID: "cat-1",
		StateID:    "state-1",
		LocationID: "loc-1",
		Volumes:    1,
		CreatedAt:  time.Now().UTC(),
	}
	if kind == models.ResourceKindBook || kind == models.ResourceKindBible {
		r.AuthorIDs = []string{"author-1"}
	}
	f.insert(ctx, "resources", r)
	return r
}

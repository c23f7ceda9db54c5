// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratalibrary/internal/app/system/paging"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateISBN = errors.New("a resource with this ISBN already exists")
)

// Store persists resources. It trusts its input: callers run resourceval
// first and hand over the cleaned draft.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Create inserts r, assigning the ID, TitleCI and timestamps.
func (s *Store) Create(ctx context.Context, r models.Resource) (models.Resource, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.TitleCI = text.Fold(r.Title)
	r.CreatedAt = now
	r.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Resource{}, ErrDuplicateISBN
		}
		return models.Resource{}, err
	}
	return r, nil
}

// Replace overwrites every mutable field of the resource with r. Optional
// fields that are empty in r are removed from the document, so a kind
// change cannot leave an ISBN or authors behind.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, r models.Resource) (models.Resource, error) {
	now := time.Now().UTC()
	set := bson.M{
		"title":       r.Title,
		"title_ci":    text.Fold(r.Title),
		"kind":        r.Kind,
		"category_id": r.CategoryID,
		"state_id":    r.StateID,
		"location_id": r.LocationID,
		"volumes":     r.Volumes,
		"updated_at":  now,
	}
	unset := bson.M{}
	optional := func(key string, present bool, v any) {
		if present {
			set[key] = v
		} else {
			unset[key] = ""
		}
	}
	optional("isbn", r.ISBN != "", r.ISBN)
	optional("author_ids", len(r.AuthorIDs) > 0, r.AuthorIDs)
	optional("publisher_id", r.PublisherID != "", r.PublisherID)
	optional("notes", r.Notes != nil, r.Notes)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var out models.Resource
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.Resource{}, ErrNotFound
	case wafflemongo.IsDup(err):
		return models.Resource{}, ErrDuplicateISBN
	case err != nil:
		return models.Resource{}, err
	}
	return out, nil
}

// GetByID returns a resource by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Resource, error) {
	var r models.Resource
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Resource{}, ErrNotFound
		}
		return models.Resource{}, err
	}
	return r, nil
}

// Delete removes a resource by ID.
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
	Kind  models.ResourceKind
	Query string // title prefix, folded before matching
}

func (f ListFilter) bson() bson.M {
	m := bson.M{}
	if f.Kind != "" {
		m["kind"] = f.Kind
	}
	if lo, hi := text.PrefixRange(f.Query); lo != "" {
		m["title_ci"] = bson.M{"$gte": lo, "$lt": hi}
	}
	return m
}

// List returns one page of resources ordered by title.
func (s *Store) List(ctx context.Context, f ListFilter, req paging.Request) (paging.Page[models.Resource], error) {
	const sortField = "title_ci"
	ks := req.Configure()

	filter := f.bson()
	if win := ks.Window(sortField); win != nil {
		filter = bson.M{"$and": []bson.M{filter, win}}
	}
	find := options.Find()
	ks.ApplyToFind(find, sortField)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return paging.Page[models.Resource]{}, err
	}
	defer cur.Close(ctx)

	var rows []models.Resource
	if err := cur.All(ctx, &rows); err != nil {
		return paging.Page[models.Resource]{}, err
	}
	return paging.Build(rows, ks,
		func(r models.Resource) string { return r.TitleCI },
		func(r models.Resource) primitive.ObjectID { return r.ID },
	), nil
}

// Count returns the number of resources matching f.
func (s *Store) Count(ctx context.Context, f ListFilter) (int64, error) {
	return s.c.CountDocuments(ctx, f.bson())
}

// internal/app/store/persontypes/persontypestore.go
package persontypestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/stratalibrary/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("person type not found")
	ErrDuplicateName = errors.New("a person type with this name already exists")
	ErrNameRequired  = errors.New("person type name is required")
)

// Store persists the person_types catalog.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("person_types")}
}

// Create inserts a catalog entry. Names are unique case-insensitively.
func (s *Store) Create(ctx context.Context, pt models.PersonType) (models.PersonType, error) {
	pt.Name = strings.TrimSpace(pt.Name)
	pt.Description = strings.TrimSpace(pt.Description)
	if pt.Name == "" {
		return models.PersonType{}, ErrNameRequired
	}
	pt.ID = primitive.NewObjectID()
	pt.NameCI = text.Fold(pt.Name)
	pt.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, pt); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PersonType{}, ErrDuplicateName
		}
		return models.PersonType{}, err
	}
	return pt, nil
}

// Restore re-inserts a previously deleted entry under its original ID.
func (s *Store) Restore(ctx context.Context, pt models.PersonType) error {
	if _, err := s.c.InsertOne(ctx, pt); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

// GetByID returns a catalog entry by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PersonType, error) {
	var pt models.PersonType
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&pt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PersonType{}, ErrNotFound
		}
		return models.PersonType{}, err
	}
	return pt, nil
}

// All returns the whole catalog ordered by name. The catalog is small;
// callers take a snapshot per request and hand it to kindresolve.
func (s *Store) All(ctx context.Context) ([]models.PersonType, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.PersonType{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a catalog entry by ID. Callers check references first.
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

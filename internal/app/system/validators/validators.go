// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/stratalibrary/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the library collections (if missing) and attaches
// JSON-Schema validators as a last line of defence behind resourceval and
// personval. Servers without collMod support (some DocumentDB versions)
// are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, c := range []struct {
		name   string
		schema bson.M
	}{
		{"resources", resourcesSchema()},
		{"people", peopleSchema()},
		{"person_types", personTypesSchema()},
	} {
		if err := ensureCollection(ctx, db, c.name); err != nil {
			problems = append(problems, c.name+": "+err.Error())
			continue
		}
		err := setValidator(ctx, db, c.name, c.schema)
		switch {
		case err == nil:
		case commandFailed(err, noSuchCommand, notImplemented):
			zap.L().Info("validator skipped, server does not support collMod", zap.String("collection", c.name))
		default:
			problems = append(problems, c.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureCollection creates name unless it is already there. A create that
// loses a race with another instance counts as present.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		zap.L().Debug("collection present", zap.String("collection", name))
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if commandFailed(err, namespaceExists) {
			return nil
		}
		zap.L().Warn("create collection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("collection created", zap.String("collection", name))
	return nil
}

// setValidator attaches schema with moderate validation, so documents
// written before a schema change are only checked when next updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator attached", zap.String("collection", name))
	return nil
}

// commandFailure names a server error by its code and the phrases older
// servers put in the message instead.
type commandFailure struct {
	code    int32
	phrases []string
}

var (
	namespaceExists = commandFailure{48, []string{"already exists", "namespace exists"}}
	noSuchCommand   = commandFailure{59, []string{"no such command"}}
	notImplemented  = commandFailure{115, []string{"not implemented", "not supported"}}
)

func commandFailed(err error, kinds ...commandFailure) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	hasCode := errors.As(err, &ce)
	msg := strings.ToLower(err.Error())
	for _, k := range kinds {
		if hasCode && ce.Code == k.code {
			return true
		}
		for _, p := range k.phrases {
			if strings.Contains(msg, p) {
				return true
			}
		}
	}
	return false
}

const nonBlank = ".*\\S.*"

func enumOf[T ~string](values []T) bson.A {
	out := bson.A{}
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func resourcesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "title_ci", "kind", "volumes", "created_at"},
			"properties": bson.M{
				"title":        bson.M{"bsonType": "string", "minLength": 1, "pattern": nonBlank},
				"title_ci":     bson.M{"bsonType": "string", "minLength": 1, "pattern": nonBlank},
				"kind":         bson.M{"enum": enumOf(models.ResourceKinds)},
				"category_id":  bson.M{"bsonType": "string"},
				"state_id":     bson.M{"bsonType": "string"},
				"location_id":  bson.M{"bsonType": "string"},
				"volumes":      bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 100},
				"isbn":         bson.M{"bsonType": "string"},
				"author_ids":   bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"publisher_id": bson.M{"bsonType": "string"},
				"notes":        bson.M{"bsonType": "string"},
				"created_at":   bson.M{"bsonType": "date"},
				"updated_at":   bson.M{"bsonType": "date"},
			},
		},
	}
}

func peopleSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"first_name", "last_name", "full_name_ci", "kind", "created_at"},
			"properties": bson.M{
				"first_name":      bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100, "pattern": nonBlank},
				"last_name":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100, "pattern": nonBlank},
				"full_name_ci":    bson.M{"bsonType": "string", "minLength": 1},
				"kind":            bson.M{"enum": enumOf(models.PersonKinds)},
				"kind_label":      bson.M{"bsonType": "string"},
				"person_type_id":  bson.M{"bsonType": "objectId"},
				"document_number": bson.M{"bsonType": "string", "pattern": "^[0-9]{6,11}$"},
				"grade":           bson.M{"bsonType": "string"},
				"created_at":      bson.M{"bsonType": "date"},
				"updated_at":      bson.M{"bsonType": "date"},
			},
		},
	}
}

func personTypesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string", "minLength": 1, "pattern": nonBlank},
				"name_ci":     bson.M{"bsonType": "string", "minLength": 1, "pattern": nonBlank},
				"description": bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/stratalibrary/internal/app/system/indexes"
	"github.com/dalemusser/stratalibrary/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes on %s failed: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"resources":    {"idx_resources_titleci__id", "idx_resources_kind_titleci__id", "uniq_resources_isbn"},
		"people":       {"idx_people_fullnameci__id", "idx_people_kind_fullnameci__id", "uniq_people_document", "idx_people_persontypeid"},
		"person_types": {"uniq_person_types_nameci"},
	}
	for coll, names := range want {
		got := indexNames(t, ctx, db, coll)
		for _, name := range names {
			if !got[name] {
				t.Errorf("expected index %q on %s", name, coll)
			}
		}
	}
}

func TestEnsureAll_UniqueDocumentEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	people := db.Collection("people")
	if _, err := people.InsertOne(ctx, bson.M{"first_name": "Ana", "document_number": "1234567"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := people.InsertOne(ctx, bson.M{"first_name": "Eva", "document_number": "1234567"}); !mongo.IsDuplicateKeyError(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}
	// People without a document number do not collide.
	for _, name := range []string{"Luis", "Raúl"} {
		if _, err := people.InsertOne(ctx, bson.M{"first_name": name}); err != nil {
			t.Errorf("insert without document failed: %v", err)
		}
	}
}

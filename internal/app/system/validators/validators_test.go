package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/stratalibrary/internal/app/system/validators"
	"github.com/dalemusser/stratalibrary/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"resources", "people", "person_types"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{
			name: "valid resource",
			coll: "resources",
			doc:  bson.M{"title": "Atlas", "title_ci": "atlas", "kind": "map", "volumes": 1, "created_at": now},
		},
		{
			name:    "resource missing title",
			coll:    "resources",
			doc:     bson.M{"kind": "map", "volumes": 1, "created_at": now},
			wantErr: true,
		},
		{
			name:    "resource with unknown kind",
			coll:    "resources",
			doc:     bson.M{"title": "Atlas", "title_ci": "atlas", "kind": "magazine", "volumes": 1, "created_at": now},
			wantErr: true,
		},
		{
			name:    "resource with zero volumes",
			coll:    "resources",
			doc:     bson.M{"title": "Atlas", "title_ci": "atlas", "kind": "map", "volumes": 0, "created_at": now},
			wantErr: true,
		},
		{
			name: "valid person",
			coll: "people",
			doc: bson.M{
				"first_name": "Ana", "last_name": "Soto", "full_name_ci": "ana soto",
				"kind": "custom", "kind_label": "Staff", "person_type_id": primitive.NewObjectID(), "created_at": now,
			},
		},
		{
			name: "person with bad document",
			coll: "people",
			doc: bson.M{
				"first_name": "Ana", "last_name": "Soto", "full_name_ci": "ana soto",
				"kind": "teacher", "document_number": "12AB", "created_at": now,
			},
			wantErr: true,
		},
		{
			name:    "person with unknown kind",
			coll:    "people",
			doc:     bson.M{"first_name": "Ana", "last_name": "Soto", "full_name_ci": "ana soto", "kind": "alien", "created_at": now},
			wantErr: true,
		},
		{
			name: "valid person type",
			coll: "person_types",
			doc:  bson.M{"name": "Librarian", "name_ci": "librarian", "created_at": now},
		},
		{
			name:    "person type with blank name",
			coll:    "person_types",
			doc:     bson.M{"name": "  ", "name_ci": "  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			if err := validators.EnsureAll(ctx, db); err != nil {
				t.Fatalf("EnsureAll failed: %v", err)
			}
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertOne error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

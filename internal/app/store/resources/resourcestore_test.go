package resourcestore_test

import (
	"errors"
	"fmt"
	"testing"

	resourcestore "github.com/dalemusser/stratalibrary/internal/app/store/resources"
	"github.com/dalemusser/stratalibrary/internal/app/system/indexes"
	"github.com/dalemusser/stratalibrary/internal/app/system/paging"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"github.com/dalemusser/stratalibrary/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func book(title string) models.Resource {
	return models.Resource{
		Title:      title,
		Kind:       models.ResourceKindBook,
		CategoryID: "cat-1",
		StateID:    "state-1",
		LocationID: "loc-1",
		Volumes:    2,
		ISBN:       "9783161484100",
		AuthorIDs:  []string{"a1"},
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, book("Cien Años de Soledad"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI != "cien anos de soledad" {
		t.Errorf("TitleCI = %q", created.TitleCI)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt == nil {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != created.Title || len(got.AuthorIDs) != 1 || got.ISBN != "9783161484100" {
		t.Errorf("GetByID = %+v", got)
	}
}

func TestStore_Create_DuplicateISBN(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := resourcestore.New(db)

	if _, err := store.Create(ctx, book("First")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, book("Second")); !errors.Is(err, resourcestore.ErrDuplicateISBN) {
		t.Errorf("err = %v, want ErrDuplicateISBN", err)
	}
}

func TestStore_Replace_ClearsInapplicableFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, book("Ajedrez"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	game := created
	game.Kind = models.ResourceKindGame
	game.ISBN = ""
	game.AuthorIDs = nil
	game.Volumes = 1

	updated, err := store.Replace(ctx, created.ID, game)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if updated.Kind != models.ResourceKindGame || updated.ISBN != "" || updated.AuthorIDs != nil {
		t.Errorf("Replace = %+v", updated)
	}

	var raw bson.M
	if err := db.Collection("resources").FindOne(ctx, bson.M{"_id": created.ID}).Decode(&raw); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	for _, key := range []string{"isbn", "author_ids"} {
		if _, ok := raw[key]; ok {
			t.Errorf("field %q should be removed from the document", key)
		}
	}
}

func TestStore_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	missing := primitive.NewObjectID()
	if _, err := store.GetByID(ctx, missing); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Errorf("GetByID err = %v, want ErrNotFound", err)
	}
	if _, err := store.Replace(ctx, missing, book("x")); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Errorf("Replace err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, missing); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := testutil.NewFixtures(t, db).CreateResource(ctx, "Mapa Mundi", models.ResourceKindMap)
	if err := store.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, r.ID); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Errorf("resource should be gone, err = %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	for i := 0; i < 5; i++ {
		fx.CreateResource(ctx, fmt.Sprintf("Atlas %d", i), models.ResourceKindMap)
	}
	fx.CreateResource(ctx, "Biblia Latinoamericana", models.ResourceKindBible)

	first, err := store.List(ctx, resourcestore.ListFilter{Kind: models.ResourceKindMap}, paging.Request{Limit: 3})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(first.Items) != 3 || !first.HasNext || first.HasPrev {
		t.Fatalf("first page = %d items, next=%v prev=%v", len(first.Items), first.HasNext, first.HasPrev)
	}
	if first.Items[0].Title != "Atlas 0" {
		t.Errorf("first item = %q, want Atlas 0", first.Items[0].Title)
	}

	second, err := store.List(ctx, resourcestore.ListFilter{Kind: models.ResourceKindMap}, paging.Request{Limit: 3, After: first.Next})
	if err != nil {
		t.Fatalf("List page 2 failed: %v", err)
	}
	if len(second.Items) != 2 || second.HasNext || !second.HasPrev {
		t.Fatalf("second page = %d items, next=%v prev=%v", len(second.Items), second.HasNext, second.HasPrev)
	}

	back, err := store.List(ctx, resourcestore.ListFilter{Kind: models.ResourceKindMap}, paging.Request{Limit: 3, Before: second.Prev})
	if err != nil {
		t.Fatalf("List back failed: %v", err)
	}
	if len(back.Items) != 3 || back.Items[0].Title != "Atlas 0" {
		t.Errorf("back page = %+v", back.Items)
	}

	search, err := store.List(ctx, resourcestore.ListFilter{Query: "bib"}, paging.Request{})
	if err != nil {
		t.Fatalf("List search failed: %v", err)
	}
	if len(search.Items) != 1 || search.Items[0].Kind != models.ResourceKindBible {
		t.Errorf("search = %+v", search.Items)
	}

	n, err := store.Count(ctx, resourcestore.ListFilter{})
	if err != nil || n != 6 {
		t.Errorf("Count = %d, %v; want 6", n, err)
	}
}

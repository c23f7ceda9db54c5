package bootstrap

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"github.com/dalemusser/stratalibrary/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "strata_library",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		TimeoutShort:     5 * time.Second,
		TimeoutMedium:    10 * time.Second,
		TimeoutBatch:     time.Minute,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{name: "bad uri", mutate: func(c *AppConfig) { c.MongoURI = "localhost:27017" }, wantErr: "invalid MongoDB URI"},
		{name: "no database", mutate: func(c *AppConfig) { c.MongoDatabase = "" }, wantErr: "mongo_database"},
		{name: "pool inverted", mutate: func(c *AppConfig) { c.MongoMinPoolSize = 200 }, wantErr: "mongo_min_pool_size"},
		{name: "zero timeout", mutate: func(c *AppConfig) { c.TimeoutShort = 0 }, wantErr: "timeouts must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestStartup_ConfiguresTimeouts(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	cfg := validAppConfig()
	cfg.TimeoutShort = 3 * time.Second
	cfg.TimeoutMedium = 7 * time.Second

	if err := Startup(context.Background(), &config.CoreConfig{}, cfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	got := timeouts.Current()
	if got.Short != 3*time.Second || got.Medium != 7*time.Second {
		t.Errorf("timeouts = %+v", got)
	}
	if got.Ping != timeouts.DefaultPing {
		t.Errorf("Ping = %s, want default %s", got.Ping, timeouts.DefaultPing)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, &config.CoreConfig{}, validAppConfig(), deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	want := map[string]bool{"resources": false, "people": false, "person_types": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("collection %q was not created", n)
		}
	}
}

func TestEnsureSchema_SeedsPersonTypes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	path := filepath.Join(t.TempDir(), "person_types.yaml")
	seed := "person_types:\n  - name: Estudiante\n  - name: Bibliotecario\n    description: Library staff\n"
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := validAppConfig()
	cfg.PersonTypesSeed = path

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema run %d: %v", i+1, err)
		}
	}

	n, err := db.Collection("person_types").CountDocuments(ctx, bson.M{})
	if err != nil || n != 2 {
		t.Errorf("person_types count = %d, %v; want 2", n, err)
	}

	cfg.PersonTypesSeed = filepath.Join(t.TempDir(), "missing.yaml")
	if err := EnsureSchema(ctx, &config.CoreConfig{}, cfg, deps, testLogger()); err == nil {
		t.Error("expected an error for a missing seed file")
	}
}

func TestBuildHandler_MountsFeatures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}

	h, err := BuildHandler(&config.CoreConfig{}, validAppConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/resources/kinds", http.StatusOK},
		{"GET", "/resources", http.StatusOK},
		{"GET", "/people", http.StatusOK},
		{"GET", "/person-types", http.StatusOK},
		{"GET", "/loans", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeHTTP(rec, testutil.NewJSONRequest(t, tt.method, tt.path, nil))
			rec.AssertStatus(t, tt.want)
		})
	}
}

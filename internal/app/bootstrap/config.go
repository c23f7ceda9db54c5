// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for StrataLibrary.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, timeout_short, etc.
//   - Environment variables: STRATALIBRARY_MONGO_URI, STRATALIBRARY_TIMEOUT_SHORT, etc.
//   - Command-line flags: --mongo_uri, --timeout_short, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "strata_library", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Store deadlines
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document reads and deletes (e.g., 5s)"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for writes and paged lists (e.g., 10s)"},
	{Name: "timeout_batch", Default: "60s", Desc: "Deadline for a whole CSV import (e.g., 60s)"},

	// Catalog
	{Name: "person_types_seed", Default: "", Desc: "YAML file of person types to insert at startup (optional)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATALIBRARY_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STRATALIBRARY", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutBatch:  appValues.Duration("timeout_batch", 60*time.Second),

		PersonTypesSeed: appValues.String("person_types_seed"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked here so a typo fails before any connection
// attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.TimeoutShort <= 0 || appCfg.TimeoutMedium <= 0 || appCfg.TimeoutBatch <= 0 {
		return fmt.Errorf("timeouts must be positive (short=%s, medium=%s, batch=%s)",
			appCfg.TimeoutShort, appCfg.TimeoutMedium, appCfg.TimeoutBatch)
	}
	return nil
}

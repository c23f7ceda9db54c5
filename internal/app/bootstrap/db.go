// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	persontypestore "github.com/dalemusser/stratalibrary/internal/app/store/persontypes"
	"github.com/dalemusser/stratalibrary/internal/app/system/catalogseed"
	"github.com/dalemusser/stratalibrary/internal/app/system/indexes"
	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"github.com/dalemusser/stratalibrary/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the MongoDB client and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize),
	)
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema installs collection validators, then indexes, then the
// optional person type seed. All three are idempotent and run on every
// start.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure collection validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	if appCfg.PersonTypesSeed != "" {
		if err := seedPersonTypes(ctx, appCfg.PersonTypesSeed, deps.MongoDatabase, logger); err != nil {
			logger.Error("seed person types failed", zap.String("path", appCfg.PersonTypesSeed), zap.Error(err))
			return err
		}
	}
	return nil
}

// seedPersonTypes inserts the entries of the seed file that are not in the
// catalog yet. Existing names, in any case, are left alone.
func seedPersonTypes(ctx context.Context, path string, db *mongo.Database, logger *zap.Logger) error {
	entries, err := catalogseed.Load(path)
	if err != nil {
		return err
	}
	store := persontypestore.New(db)
	added := 0
	for _, pt := range entries {
		_, err := store.Create(ctx, pt)
		switch {
		case errors.Is(err, persontypestore.ErrDuplicateName):
		case err != nil:
			return fmt.Errorf("seed %q: %w", pt.Name, err)
		default:
			added++
		}
	}
	logger.Info("person types seeded",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
		zap.Int("added", added),
	)
	return nil
}

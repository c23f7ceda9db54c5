// internal/app/features/people/handler.go
package people

import (
	"context"

	uierrors "github.com/dalemusser/stratalibrary/internal/app/features/errors"
	peoplestore "github.com/dalemusser/stratalibrary/internal/app/store/people"
	persontypestore "github.com/dalemusser/stratalibrary/internal/app/store/persontypes"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CatalogSource supplies the person_types snapshot used to resolve kinds.
type CatalogSource interface {
	All(ctx context.Context) ([]models.PersonType, error)
}

// Handler owns the people endpoints. Every validation resolves the kind
// against a fresh catalog snapshot taken from Types.
type Handler struct {
	Store  *peoplestore.Store
	Types  CatalogSource
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a Handler bound to the given Mongo database and
// logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  peoplestore.New(db),
		Types:  persontypestore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

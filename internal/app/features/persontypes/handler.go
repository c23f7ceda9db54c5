// internal/app/features/persontypes/handler.go
package persontypes

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/stratalibrary/internal/app/features/errors"
	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	peoplestore "github.com/dalemusser/stratalibrary/internal/app/store/people"
	persontypestore "github.com/dalemusser/stratalibrary/internal/app/store/persontypes"
	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReferenceCounter reports how many people point at a catalog entry.
type ReferenceCounter interface {
	CountByPersonType(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Handler manages the person_types catalog.
type Handler struct {
	Types  *persontypestore.Store
	People ReferenceCounter
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Types:  persontypestore.New(db),
		People: peoplestore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

// Routes mounts the catalog endpoints (typically under "/person-types").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(api.ValidationID)
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}

// entry is a catalog row plus the kind its name maps to.
type entry struct {
	models.PersonType
	Kind models.PersonKind `json:"kind"`
}

func withKind(pt models.PersonType) entry {
	kind, ok := kindresolve.KnownKind(pt.Name)
	if !ok {
		kind = models.PersonKindCustom
	}
	return entry{PersonType: pt, Kind: kind}
}

// ServeList returns the whole catalog ordered by name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.Types.All(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list person types", err, "Could not list person types.")
		return
	}
	out := make([]entry, 0, len(all))
	for _, pt := range all {
		out = append(out, withKind(pt))
	}
	api.WriteJSON(w, http.StatusOK, out)
}

type createInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate adds a catalog entry.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := api.ReadJSON(w, r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode person type", err, "Request body must be a JSON person type.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pt, err := h.Types.Create(ctx, models.PersonType{Name: in.Name, Description: in.Description})
	switch {
	case errors.Is(err, persontypestore.ErrNameRequired):
		h.ErrLog.LogBadRequest(w, r, "person type without name", err, "Name is required.")
		return
	case errors.Is(err, persontypestore.ErrDuplicateName):
		h.ErrLog.LogConflict(w, r, "duplicate person type", err, "A person type with this name already exists.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create person type", err, "Could not save the person type.")
		return
	}
	h.Log.Info("person type created", zap.String("person_type_id", pt.ID.Hex()), zap.String("name", pt.Name))
	api.WriteJSON(w, http.StatusCreated, withKind(pt))
}

// HandleDelete removes a catalog entry nobody references. A person can be
// linked between the count and the delete, so references are counted again
// afterwards and the entry is put back if one appeared.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad person type id", err, "Invalid person type id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pt, err := h.Types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, persontypestore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "delete missing person type", "Person type not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load person type", err, "Could not delete the person type.")
		return
	}

	n, err := h.People.CountByPersonType(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count person type references", err, "Could not delete the person type.")
		return
	}
	if n > 0 {
		h.ErrLog.LogConflict(w, r, "person type in use", nil, "Person type is still assigned to people.")
		return
	}

	if err := h.Types.Delete(ctx, id); err != nil {
		if errors.Is(err, persontypestore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "delete missing person type", "Person type not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete person type", err, "Could not delete the person type.")
		return
	}

	n, err = h.People.CountByPersonType(ctx, id)
	if err == nil && n == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if rerr := h.Types.Restore(ctx, pt); rerr != nil {
		h.Log.Error("restore person type after late reference",
			zap.String("person_type_id", id.Hex()), zap.Error(rerr))
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "recount person type references", err, "Could not delete the person type.")
		return
	}
	h.ErrLog.LogConflict(w, r, "person type linked during delete", nil, "Person type is still assigned to people.")
}

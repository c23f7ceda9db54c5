// internal/app/features/resources/crud.go
package resources

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	resourcestore "github.com/dalemusser/stratalibrary/internal/app/store/resources"
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/paging"
	"github.com/dalemusser/stratalibrary/internal/app/system/resourceval"
	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type rejected struct {
	Error   string                     `json:"error"`
	Result  entityval.ValidationResult `json:"result"`
	Summary entityval.Summary          `json:"summary"`
}

func writeRejected(w http.ResponseWriter, res entityval.ValidationResult) {
	api.WriteJSON(w, http.StatusUnprocessableEntity, rejected{
		Error:   "Resource failed validation.",
		Result:  res,
		Summary: entityval.Summarize(res),
	})
}

// HandleCreate validates the posted draft and stores the cleaned version.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	out := h.validate(w, d)
	if !out.Result.IsValid {
		writeRejected(w, out.Result)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Store.Create(ctx, out.Cleaned.ToModel(out.Kind))
	if err != nil {
		if errors.Is(err, resourcestore.ErrDuplicateISBN) {
			h.ErrLog.LogConflict(w, r, "duplicate isbn", err, "A resource with this ISBN already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create resource", err, "Could not save the resource.")
		return
	}

	h.Log.Info("resource created",
		zap.String("validation_id", api.ValidationIDOf(w)),
		zap.String("resource_id", res.ID.Hex()),
		zap.String("kind", string(res.Kind)),
	)
	api.WriteJSON(w, http.StatusCreated, res)
}

// HandleReplace validates the posted draft and replaces the stored
// resource with the cleaned version. The body is a complete draft.
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	out := h.validate(w, d)
	if !out.Result.IsValid {
		writeRejected(w, out.Result)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Store.Replace(ctx, id, out.Cleaned.ToModel(out.Kind))
	switch {
	case errors.Is(err, resourcestore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "replace missing resource", "Resource not found.")
		return
	case errors.Is(err, resourcestore.ErrDuplicateISBN):
		h.ErrLog.LogConflict(w, r, "duplicate isbn", err, "A resource with this ISBN already exists.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "replace resource", err, "Could not save the resource.")
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// ServeGet returns one stored resource.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, resourcestore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "get missing resource", "Resource not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get resource", err, "Could not load the resource.")
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// HandleDelete removes one stored resource.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, resourcestore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "delete missing resource", "Resource not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete resource", err, "Could not delete the resource.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeList returns one keyset page of resources ordered by title,
// optionally filtered by ?kind= and a title prefix in ?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var f resourcestore.ListFilter
	if raw := query.Get(r, "kind"); raw != "" {
		k, err := resourceval.ParseKind(raw)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "list filter kind", err, "Unknown resource kind.")
			return
		}
		f.Kind = k
	}
	f.Query = query.Search(r, "q")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list resources")
	defer cancel()

	page, err := h.Store.List(ctx, f, paging.ParseRequest(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list resources", err, "Could not list resources.")
		return
	}
	total, err := h.Store.Count(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count resources", err, "Could not list resources.")
		return
	}
	api.WriteJSON(w, http.StatusOK, listResponse{Page: page, Total: total})
}

// listResponse is one page plus the number of resources matching the
// filter across all pages.
type listResponse struct {
	paging.Page[models.Resource]
	Total int64 `json:"total"`
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad resource id", err, "Invalid resource id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

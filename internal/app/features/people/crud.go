// internal/app/features/people/crud.go
package people

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	peoplestore "github.com/dalemusser/stratalibrary/internal/app/store/people"
	"github.com/dalemusser/stratalibrary/internal/app/system/entityval"
	"github.com/dalemusser/stratalibrary/internal/app/system/kindresolve"
	"github.com/dalemusser/stratalibrary/internal/app/system/paging"
	"github.com/dalemusser/stratalibrary/internal/app/system/personval"
	"github.com/dalemusser/stratalibrary/internal/app/system/timeouts"
	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type rejected struct {
	Error string `json:"error"`
	validateResponse
}

func writeRejected(w http.ResponseWriter, out personval.Outcome) {
	api.WriteJSON(w, http.StatusUnprocessableEntity, rejected{
		Error:            "Person failed validation.",
		validateResponse: newValidateResponse(out),
	})
}

// HandleCreate validates the posted draft and stores the cleaned person
// with its resolved kind.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	out, ok := h.validate(w, r, d)
	if !ok {
		return
	}
	if !out.Result.IsValid {
		writeRejected(w, out)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Store.Create(ctx, out.Cleaned.ToModel(out.Resolution))
	if err != nil {
		if errors.Is(err, peoplestore.ErrDuplicateDocument) {
			h.ErrLog.LogConflict(w, r, "duplicate document number", err, "A person with this document number already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create person", err, "Could not save the person.")
		return
	}

	h.Log.Info("person created",
		zap.String("validation_id", api.ValidationIDOf(w)),
		zap.String("person_id", p.ID.Hex()),
		zap.String("kind", string(p.Kind)),
	)
	api.WriteJSON(w, http.StatusCreated, p)
}

// HandleReplace validates the posted draft and replaces the stored person.
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	d, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	out, ok := h.validate(w, r, d)
	if !ok {
		return
	}
	if !out.Result.IsValid {
		writeRejected(w, out)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Store.Replace(ctx, id, out.Cleaned.ToModel(out.Resolution))
	switch {
	case errors.Is(err, peoplestore.ErrNotFound):
		h.ErrLog.LogNotFound(w, r, "replace missing person", "Person not found.")
		return
	case errors.Is(err, peoplestore.ErrDuplicateDocument):
		h.ErrLog.LogConflict(w, r, "duplicate document number", err, "A person with this document number already exists.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "replace person", err, "Could not save the person.")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Person, bool) {
	id, ok := h.parseID(w, r)
	if !ok {
		return models.Person{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, peoplestore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "get missing person", "Person not found.")
		return models.Person{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get person", err, "Could not load the person.")
		return models.Person{}, false
	}
	return p, true
}

// ServeGet returns one stored person.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// ServeKind re-resolves a stored person's kind against the current
// catalog. The stored Kind reflects the catalog at save time; this
// reflects it now.
func (h *Handler) ServeKind(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	cat, err := h.catalog(r.Context())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load person types", err, "Could not load person types.")
		return
	}
	rec := kindresolve.RecordFromPerson(p)
	api.WriteJSON(w, http.StatusOK, kindresolve.Resolve(&rec, cat))
}

// HandleDelete removes one stored person.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, peoplestore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "delete missing person", "Person not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete person", err, "Could not delete the person.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeList returns one keyset page of people ordered by full name,
// optionally filtered by stored ?kind= and a name prefix in ?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	var f peoplestore.ListFilter
	if raw := query.Get(r, "kind"); raw != "" {
		k := models.PersonKind(strings.ToLower(raw))
		if !k.Valid() {
			err := fmt.Errorf("%w: person kind %q", entityval.ErrUnsupportedKind, raw)
			h.ErrLog.LogBadRequest(w, r, "list filter kind", err, "Unknown person kind.")
			return
		}
		f.Kind = k
	}
	f.Query = query.Search(r, "q")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list people")
	defer cancel()

	page, err := h.Store.List(ctx, f, paging.ParseRequest(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list people", err, "Could not list people.")
		return
	}
	api.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad person id", err, "Invalid person id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

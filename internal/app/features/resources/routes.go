// internal/app/features/resources/routes.go
package resources

import (
	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the resource endpoints under whatever base path the caller
// chooses (typically "/resources" from bootstrap).
//
// Example from bootstrap:
//
//	h := resources.NewHandler(db, errLog, logger)
//	r.Mount("/resources", resources.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(api.ValidationID)

	// Stateless: no database access.
	r.Get("/kinds", h.ServeKinds)
	r.Post("/validate", h.HandleValidate)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleReplace)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

// internal/app/features/people/routes.go
package people

import (
	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the people endpoints (typically under "/people").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(api.ValidationID)

	r.Post("/validate", h.HandleValidate)
	r.Post("/import", h.HandleImport)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleReplace)
	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/kind", h.ServeKind)

	return r
}

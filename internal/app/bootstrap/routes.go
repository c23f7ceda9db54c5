// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratalibrary/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratalibrary/internal/app/features/health"
	peoplefeature "github.com/dalemusser/stratalibrary/internal/app/features/people"
	persontypesfeature "github.com/dalemusser/stratalibrary/internal/app/features/persontypes"
	resourcesfeature "github.com/dalemusser/stratalibrary/internal/app/features/resources"
	"github.com/dalemusser/stratalibrary/internal/app/features/shared/api"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Every feature is a JSON API mounted
// under its own prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	resourcesHandler := resourcesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/resources", resourcesfeature.Routes(resourcesHandler))

	peopleHandler := peoplefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/people", peoplefeature.Routes(peopleHandler))

	personTypesHandler := persontypesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/person-types", persontypesfeature.Routes(personTypesHandler))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		api.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Not found."})
	})

	return r, nil
}

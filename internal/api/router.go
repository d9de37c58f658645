package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TWRT/project-config-migrator/internal/api/handlers"
	"github.com/TWRT/project-config-migrator/internal/service"
)

// Defaults are the project keys used when a migration request names none.
type Defaults struct {
	SourceProjectKey      string
	DestinationProjectKey string
}

func SetupRouter(migrationService *service.MigrationService, projectService *service.ProjectService, defaults Defaults) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	migrationHandler := handlers.NewMigrationHandler(migrationService, defaults.SourceProjectKey, defaults.DestinationProjectKey)
	projectHandler := handlers.NewProjectHandler(projectService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/migrations", func(r chi.Router) {
		r.Post("/", migrationHandler.CreateMigration)
		r.Get("/", migrationHandler.ListMigrations)
		r.Get("/{id}", migrationHandler.GetMigration)
		r.Get("/{id}/mappings", migrationHandler.GetMappings)
	})

	r.Route("/projects/{key}", func(r chi.Router) {
		r.Get("/issue-types", projectHandler.GetIssueTypes)
		r.Get("/custom-fields", projectHandler.GetCustomFields)
	})

	return r
}

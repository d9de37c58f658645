package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/TWRT/project-config-migrator/internal/service"
)

type CreateMigrationRequestBody struct {
	SourceProjectKey      string `json:"source_project_key"`
	DestinationProjectKey string `json:"destination_project_key"`
}

type MigrationHandler struct {
	migrationService *service.MigrationService
	defaultSource    string
	defaultDest      string
}

// NewMigrationHandler creates a handler that falls back to defaultSource and
// defaultDest when a request names no project.
func NewMigrationHandler(migrationService *service.MigrationService, defaultSource, defaultDest string) *MigrationHandler {
	return &MigrationHandler{
		migrationService: migrationService,
		defaultSource:    defaultSource,
		defaultDest:      defaultDest,
	}
}

func (h *MigrationHandler) CreateMigration(w http.ResponseWriter, r *http.Request) {
	var reqBody CreateMigrationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "JSON error", err)
		return
	}

	source := strings.TrimSpace(reqBody.SourceProjectKey)
	if source == "" {
		source = h.defaultSource
	}
	dest := strings.TrimSpace(reqBody.DestinationProjectKey)
	if dest == "" {
		dest = h.defaultDest
	}
	if source == "" || dest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "source_project_key and destination_project_key are required",
		})
		return
	}

	migration, err := h.migrationService.StartMigration(r.Context(), source, dest)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error trying to start migration", err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"migration_id": migration.ID,
		"run_id":       migration.RunID,
		"status":       migration.Status,
		"message":      "Migration initiated successfully",
	})
}

func (h *MigrationHandler) GetMigration(w http.ResponseWriter, r *http.Request) {
	id, err := migrationID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid migration id", err)
		return
	}

	migration, err := h.migrationService.GetMigration(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), "Error trying to get migration", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"migration": migration,
	})
}

func (h *MigrationHandler) ListMigrations(w http.ResponseWriter, r *http.Request) {
	migrations, err := h.migrationService.GetMigrations(r.Context())
	if err != nil {
		writeError(w, statusFor(err), "Error trying to get migrations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"migrations": migrations,
	})
}

func (h *MigrationHandler) GetMappings(w http.ResponseWriter, r *http.Request) {
	id, err := migrationID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid migration id", err)
		return
	}

	mappings, err := h.migrationService.GetMappings(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), "Error trying to get mappings", err)
		return
	}
	writeJSON(w, http.StatusOK, mappings)
}

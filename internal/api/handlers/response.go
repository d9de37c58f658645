package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, map[string]string{
		"error": message + ": " + err.Error(),
	})
}

// statusFor maps a service error to the response status.
func statusFor(err error) int {
	if errors.Is(err, repository.ErrMigrationNotFound) {
		return http.StatusNotFound
	}
	var remoteErr *client.RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func migrationID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

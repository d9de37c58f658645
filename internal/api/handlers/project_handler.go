package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TWRT/project-config-migrator/internal/service"
)

// ProjectHandler previews the configuration of a project before migrating it.
type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) GetIssueTypes(w http.ResponseWriter, r *http.Request) {
	issueTypes, err := h.projectService.GetIssueTypes(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, statusFor(err), "Error trying to get issue types", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"issue_types": issueTypes,
	})
}

func (h *ProjectHandler) GetCustomFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.projectService.GetCustomFields(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, statusFor(err), "Error trying to get custom fields", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"custom_fields": fields,
	})
}

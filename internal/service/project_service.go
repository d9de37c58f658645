package service

import (
	"context"
	"fmt"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
)

// ProjectService exposes a project's configuration as the migrator will
// read it.
type ProjectService struct {
	configClient client.ConfigClient
}

func NewProjectService(configClient client.ConfigClient) *ProjectService {
	return &ProjectService{configClient: configClient}
}

func (s *ProjectService) GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error) {
	issueTypes, err := s.configClient.GetIssueTypes(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("get issue types of %s: %w", projectKey, err)
	}
	return issueTypes, nil
}

func (s *ProjectService) GetCustomFields(ctx context.Context, projectKey string) ([]models.CustomField, error) {
	fields, err := s.configClient.GetCustomFields(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("get custom fields of %s: %w", projectKey, err)
	}
	return fields, nil
}

package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/TWRT/project-config-migrator/internal/models"
)

type IssueTypeClient interface {
	GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error)
	CreateIssueType(ctx context.Context, projectKey string, params models.IssueTypeParams) (*models.IssueType, error)
}

type CustomFieldClient interface {
	GetCustomFields(ctx context.Context, projectKey string) ([]models.CustomField, error)
	CreateCustomField(ctx context.Context, projectKey string, payload models.CustomFieldPayload) (*models.CustomField, error)
}

// ConfigClient is the remote project-configuration API a migration runs against.
type ConfigClient interface {
	IssueTypeClient
	CustomFieldClient
}

// RemoteError is returned for any non-success response of the remote API.
// Body holds the response body verbatim.
type RemoteError struct {
	Operation  string
	StatusCode int
	Body       string
	Messages   []string
}

func (e *RemoteError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

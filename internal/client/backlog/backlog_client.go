package backlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
)

type BacklogClient struct {
	baseUrl    string
	apiKey     string
	httpClient *http.Client
}

// NewBacklogClient returns a client for the space at spaceUrl. A zero
// timeout leaves requests bounded only by their context.
func NewBacklogClient(spaceUrl, apiKey string, timeout time.Duration) *BacklogClient {
	return &BacklogClient{
		baseUrl:    strings.TrimRight(spaceUrl, "/") + "/api/v2",
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BacklogClient) GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error) {
	var resp []IssueTypeResponse
	if err := c.do(ctx, "get issue types", http.MethodGet, c.projectURL(projectKey, "issueTypes"), nil, &resp); err != nil {
		return nil, err
	}

	issueTypes := make([]models.IssueType, len(resp))
	for i, it := range resp {
		issueTypes[i] = it.toModel()
	}
	return issueTypes, nil
}

func (c *BacklogClient) CreateIssueType(ctx context.Context, projectKey string, params models.IssueTypeParams) (*models.IssueType, error) {
	var resp IssueTypeResponse
	if err := c.do(ctx, "create issue type", http.MethodPost, c.projectURL(projectKey, "issueTypes"), params, &resp); err != nil {
		return nil, err
	}

	created := resp.toModel()
	return &created, nil
}

func (c *BacklogClient) GetCustomFields(ctx context.Context, projectKey string) ([]models.CustomField, error) {
	var resp []CustomFieldResponse
	if err := c.do(ctx, "get custom fields", http.MethodGet, c.projectURL(projectKey, "customFields"), nil, &resp); err != nil {
		return nil, err
	}

	fields := make([]models.CustomField, len(resp))
	for i, cf := range resp {
		field, err := cf.toModel()
		if err != nil {
			return nil, fmt.Errorf("parse custom fields (backlog): %w", err)
		}
		fields[i] = field
	}
	return fields, nil
}

func (c *BacklogClient) CreateCustomField(ctx context.Context, projectKey string, payload models.CustomFieldPayload) (*models.CustomField, error) {
	var resp CustomFieldResponse
	if err := c.do(ctx, "create custom field", http.MethodPost, c.projectURL(projectKey, "customFields"), payload, &resp); err != nil {
		return nil, err
	}

	created, err := resp.toModel()
	if err != nil {
		return nil, fmt.Errorf("parse created custom field (backlog): %w", err)
	}
	return &created, nil
}

func (c *BacklogClient) projectURL(projectKey, resource string) string {
	return c.baseUrl + "/projects/" + url.PathEscape(projectKey) + "/" + resource +
		"?apiKey=" + url.QueryEscape(c.apiKey)
}

// do sends the request and decodes a successful response into out. Any
// non-2xx status becomes a *client.RemoteError.
func (c *BacklogClient) do(ctx context.Context, operation, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request (backlog): %w", operation, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s request (backlog): %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s (backlog): %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response (backlog): %w", operation, err)
	}
	slog.Debug("backlog request", "operation", operation, "method", method, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &client.RemoteError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		var backlogErr BacklogErrors
		if err := json.Unmarshal(respBody, &backlogErr); err == nil {
			for _, e := range backlogErr.Errors {
				remoteErr.Messages = append(remoteErr.Messages, e.Message)
			}
		}
		return remoteErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse %s response (backlog): %w", operation, err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
	"github.com/TWRT/project-config-migrator/internal/repository"
)

// fakeConfigClient serves fixed source projects and records every creation
// request sent to the destination.
type fakeConfigClient struct {
	issueTypes   map[string][]models.IssueType
	customFields map[string][]models.CustomField

	// createdIssueTypeIDs and createdFieldIDs fix the id the server assigns
	// per name; unknown names get sequential ids from nextID.
	createdIssueTypeIDs map[string]int64
	createdFieldIDs     map[string]int64
	// createdItems lists the items the server returns for a created list field.
	createdItems map[string][]models.CustomFieldItem

	failIssueType   string
	failCustomField string
	beforeCreate    func(name string)
	afterCreate     func(name string)

	mu                  sync.Mutex
	nextID              int64
	issueTypeParams     []models.IssueTypeParams
	customFieldPayloads map[string]models.CustomFieldPayload
	getCustomFieldCalls int
}

var _ client.ConfigClient = (*fakeConfigClient)(nil)

func newFakeConfigClient() *fakeConfigClient {
	return &fakeConfigClient{
		issueTypes:          map[string][]models.IssueType{},
		customFields:        map[string][]models.CustomField{},
		createdIssueTypeIDs: map[string]int64{},
		createdFieldIDs:     map[string]int64{},
		createdItems:        map[string][]models.CustomFieldItem{},
		customFieldPayloads: map[string]models.CustomFieldPayload{},
		nextID:              1000,
	}
}

func (f *fakeConfigClient) GetIssueTypes(ctx context.Context, projectKey string) ([]models.IssueType, error) {
	types, ok := f.issueTypes[projectKey]
	if !ok {
		return nil, &client.RemoteError{Operation: "get issue types", StatusCode: 404, Body: `{"errors":[{"message":"No project."}]}`}
	}
	return types, nil
}

func (f *fakeConfigClient) CreateIssueType(ctx context.Context, projectKey string, params models.IssueTypeParams) (*models.IssueType, error) {
	if f.beforeCreate != nil {
		f.beforeCreate(params.Name)
	}
	if f.afterCreate != nil {
		defer f.afterCreate(params.Name)
	}
	if params.Name == f.failIssueType {
		return nil, &client.RemoteError{Operation: "create issue type", StatusCode: 400, Body: `{"errors":[{"message":"Invalid color."}]}`}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.issueTypeParams = append(f.issueTypeParams, params)
	id, ok := f.createdIssueTypeIDs[params.Name]
	if !ok {
		f.nextID++
		id = f.nextID
	}
	return &models.IssueType{
		ID:                  id,
		Name:                params.Name,
		Color:               params.Color,
		TemplateSummary:     params.TemplateSummary,
		TemplateDescription: params.TemplateDescription,
	}, nil
}

func (f *fakeConfigClient) GetCustomFields(ctx context.Context, projectKey string) ([]models.CustomField, error) {
	f.mu.Lock()
	f.getCustomFieldCalls++
	f.mu.Unlock()
	return f.customFields[projectKey], nil
}

func (f *fakeConfigClient) CreateCustomField(ctx context.Context, projectKey string, payload models.CustomFieldPayload) (*models.CustomField, error) {
	name := payloadName(payload)
	if f.beforeCreate != nil {
		f.beforeCreate(name)
	}
	if f.afterCreate != nil {
		defer f.afterCreate(name)
	}
	if name == f.failCustomField {
		return nil, &client.RemoteError{Operation: "create custom field", StatusCode: 400, Body: `{"errors":[{"message":"Duplicated."}]}`}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.customFieldPayloads[name] = payload
	id, ok := f.createdFieldIDs[name]
	if !ok {
		f.nextID++
		id = f.nextID
	}
	created := &models.CustomField{ID: id, TypeID: payload.FieldType(), Name: name}
	if items, ok := f.createdItems[name]; ok {
		created.Attributes = models.ListAttributes{Items: items}
	}
	return created, nil
}

func (f *fakeConfigClient) payloadJSON(t *testing.T, name string) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.customFieldPayloads[name]
	require.True(t, ok, "no payload sent for %q", name)
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(b)
}

func payloadName(payload models.CustomFieldPayload) string {
	switch p := payload.(type) {
	case models.PlainFieldPayload:
		return p.Name
	case models.ListFieldPayload:
		return p.Name
	case models.DateFieldPayload:
		return p.Name
	case models.NumberFieldPayload:
		return p.Name
	default:
		panic(fmt.Sprintf("unexpected payload %T", payload))
	}
}

type recordingReporter struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingReporter) Info(format string, a ...any)    { r.add(format, a...) }
func (r *recordingReporter) Success(format string, a ...any) { r.add(format, a...) }
func (r *recordingReporter) Warning(format string, a ...any) { r.add("WARN "+format, a...) }

func (r *recordingReporter) add(format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, a...))
}

func newTestMigrationService(t *testing.T, c client.ConfigClient) *MigrationService {
	t.Helper()
	db, err := repository.InitDB("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewMigrationService(
		c,
		repository.NewMigrationRepository(db),
		repository.NewIssueTypeMappingRepository(db),
		repository.NewCustomFieldMappingRepository(db),
		repository.NewCustomFieldItemMappingRepository(db),
	)
	return s
}

func ptr[T any](v T) *T { return &v }

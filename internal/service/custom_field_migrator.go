package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
)

// CustomFieldMigrator copies every custom field of one project into another,
// pointing each field at the destination counterparts of its issue types.
//
// Like IssueTypeMigrator it creates fields concurrently and does not roll
// back fields already created when a sibling creation fails.
type CustomFieldMigrator struct {
	client client.CustomFieldClient
}

func NewCustomFieldMigrator(client client.CustomFieldClient) *CustomFieldMigrator {
	return &CustomFieldMigrator{client: client}
}

// Migrate remaps and rebuilds every payload before issuing any creation, so
// an issue type missing from correspondence aborts the run with nothing
// written.
func (m *CustomFieldMigrator) Migrate(
	ctx context.Context,
	sourceProjectKey, destProjectKey string,
	correspondence models.IdentifierCorrespondence,
) ([]models.CustomFieldPair, error) {
	originals, err := m.client.GetCustomFields(ctx, sourceProjectKey)
	if err != nil {
		return nil, fmt.Errorf("get custom fields from source: %w", err)
	}

	payloads := make([]models.CustomFieldPayload, len(originals))
	for i, original := range originals {
		payload, err := BuildCustomFieldPayload(original, correspondence)
		if err != nil {
			return nil, err
		}
		if !original.TypeID.Known() {
			slog.Warn("custom field has an unrecognized type, copying common attributes only",
				"field", original.Name, "type_id", int(original.TypeID))
		}
		payloads[i] = payload
	}

	pairs := make([]models.CustomFieldPair, len(originals))
	g, gctx := errgroup.WithContext(ctx)
	for i, original := range originals {
		g.Go(func() error {
			created, err := m.client.CreateCustomField(gctx, destProjectKey, payloads[i])
			if err != nil {
				return fmt.Errorf("create custom field %q: %w", original.Name, err)
			}
			slog.Debug("custom field created", "name", created.Name, "source_id", original.ID, "dest_id", created.ID)
			pairs[i] = models.CustomFieldPair{Original: original, Created: *created}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pairs, nil
}

// BuildCustomFieldPayload rewrites the applicable issue types of field
// through correspondence and builds the creation payload for its kind.
func BuildCustomFieldPayload(field models.CustomField, correspondence models.IdentifierCorrespondence) (models.CustomFieldPayload, error) {
	applicable, err := correspondence.Remap(field.ApplicableIssueTypes)
	if err != nil {
		return nil, fmt.Errorf("remap custom field %q: %w", field.Name, err)
	}
	return models.NewCustomFieldPayload(field, applicable), nil
}

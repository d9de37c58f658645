package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
)

// IssueTypeMigrator copies every issue type of one project into another.
//
// Creation calls are issued concurrently. If any of them fails the whole
// batch fails, and issue types already created in the destination project
// are left in place: there is no rollback.
type IssueTypeMigrator struct {
	client client.IssueTypeClient
}

func NewIssueTypeMigrator(client client.IssueTypeClient) *IssueTypeMigrator {
	return &IssueTypeMigrator{client: client}
}

// Migrate returns one pair per source issue type, in the order the source
// project lists them, regardless of the order creations complete in.
func (m *IssueTypeMigrator) Migrate(ctx context.Context, sourceProjectKey, destProjectKey string) ([]models.IssueTypePair, error) {
	originals, err := m.client.GetIssueTypes(ctx, sourceProjectKey)
	if err != nil {
		return nil, fmt.Errorf("get issue types from source: %w", err)
	}

	pairs := make([]models.IssueTypePair, len(originals))
	g, gctx := errgroup.WithContext(ctx)
	for i, original := range originals {
		g.Go(func() error {
			created, err := m.client.CreateIssueType(gctx, destProjectKey, models.NewIssueTypeParams(original))
			if err != nil {
				return fmt.Errorf("create issue type %q: %w", original.Name, err)
			}
			slog.Debug("issue type created", "name", created.Name, "source_id", original.ID, "dest_id", created.ID)
			pairs[i] = models.IssueTypePair{Original: original, Created: *created}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pairs, nil
}

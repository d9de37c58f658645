package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TWRT/project-config-migrator/internal/client"
	"github.com/TWRT/project-config-migrator/internal/models"
	"github.com/TWRT/project-config-migrator/internal/repository"
)

// Reporter receives the human-readable progress of a run.
type Reporter interface {
	Info(format string, a ...any)
	Success(format string, a ...any)
	Warning(format string, a ...any)
}

type MigrationService struct {
	issueTypeMigrator          *IssueTypeMigrator
	customFieldMigrator        *CustomFieldMigrator
	migrationRepo              *repository.MigrationRepository
	issueTypeMappingRepo       *repository.IssueTypeMappingRepository
	customFieldMappingRepo     *repository.CustomFieldMappingRepository
	customFieldItemMappingRepo *repository.CustomFieldItemMappingRepository
	newRunID                   func() string
}

func NewMigrationService(
	configClient client.ConfigClient,
	migrationRepo *repository.MigrationRepository,
	issueTypeMappingRepo *repository.IssueTypeMappingRepository,
	customFieldMappingRepo *repository.CustomFieldMappingRepository,
	customFieldItemMappingRepo *repository.CustomFieldItemMappingRepository,
) *MigrationService {
	return &MigrationService{
		issueTypeMigrator:          NewIssueTypeMigrator(configClient),
		customFieldMigrator:        NewCustomFieldMigrator(configClient),
		migrationRepo:              migrationRepo,
		issueTypeMappingRepo:       issueTypeMappingRepo,
		customFieldMappingRepo:     customFieldMappingRepo,
		customFieldItemMappingRepo: customFieldItemMappingRepo,
		newRunID:                   uuid.NewString,
	}
}

type MigrationResult struct {
	Migration    repository.Migration
	IssueTypes   []models.IssueTypePair
	CustomFields []models.CustomFieldPair
}

type CustomFieldMappingDetail struct {
	repository.CustomFieldMappingRecord
	Items []repository.CustomFieldItemMappingRecord `json:"items"`
}

type MigrationMappings struct {
	IssueTypes   []repository.IssueTypeMapping `json:"issue_types"`
	CustomFields []CustomFieldMappingDetail    `json:"custom_fields"`
}

// Run migrates issue types and then custom fields from sourceProjectKey to
// destProjectKey, stopping at the first error.
func (s *MigrationService) Run(ctx context.Context, sourceProjectKey, destProjectKey string, reporter Reporter) (*MigrationResult, error) {
	migration, err := s.begin(ctx, sourceProjectKey, destProjectKey)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, migration, reporter)
}

// StartMigration journals a new run and executes it in the background,
// reporting progress to the log. The returned id can be polled with
// GetMigration.
func (s *MigrationService) StartMigration(ctx context.Context, sourceProjectKey, destProjectKey string) (repository.Migration, error) {
	migration, err := s.begin(ctx, sourceProjectKey, destProjectKey)
	if err != nil {
		return repository.Migration{}, err
	}

	go func() {
		bg := context.WithoutCancel(ctx)
		if _, err := s.execute(bg, migration, NewLogReporter(migration.RunID)); err != nil {
			slog.Error("migration failed", "run_id", migration.RunID, "migration_id", migration.ID, "error", err)
		}
	}()

	return migration, nil
}

func (s *MigrationService) begin(ctx context.Context, sourceProjectKey, destProjectKey string) (repository.Migration, error) {
	migration := repository.Migration{
		RunID:                 s.newRunID(),
		SourceProjectKey:      sourceProjectKey,
		DestinationProjectKey: destProjectKey,
		Status:                repository.MigrationStatusRunning,
	}
	if _, err := s.migrationRepo.Create(ctx, &migration); err != nil {
		return repository.Migration{}, fmt.Errorf("journal migration: %w", err)
	}
	return migration, nil
}

func (s *MigrationService) execute(ctx context.Context, migration repository.Migration, reporter Reporter) (*MigrationResult, error) {
	logger := slog.With("run_id", migration.RunID)
	logger.Debug("migration started", "source", migration.SourceProjectKey, "destination", migration.DestinationProjectKey)

	reporter.Info("Copying Issue Types...")
	issueTypes, err := s.issueTypeMigrator.Migrate(ctx, migration.SourceProjectKey, migration.DestinationProjectKey)
	if err != nil {
		return nil, s.fail(ctx, migration, fmt.Errorf("migrate issue types: %w", err))
	}
	for _, p := range issueTypes {
		reporter.Info("    Issue Type name: %s", p.Created.Name)
	}
	reporter.Success("%d Issue Types were copied!", len(issueTypes))

	if err := s.recordIssueTypes(ctx, migration.ID, issueTypes); err != nil {
		return nil, s.fail(ctx, migration, err)
	}

	reporter.Info("Copying Custom Fields...")
	correspondence := models.NewIdentifierCorrespondence(issueTypes)
	customFields, err := s.customFieldMigrator.Migrate(ctx, migration.SourceProjectKey, migration.DestinationProjectKey, correspondence)
	if err != nil {
		return nil, s.fail(ctx, migration, fmt.Errorf("migrate custom fields: %w", err))
	}
	for _, p := range customFields {
		reporter.Info("    Custom Field name: %s", p.Created.Name)
		if !p.Original.TypeID.Known() {
			reporter.Warning("Custom Field %q has unrecognized type %d; only common attributes were copied", p.Original.Name, int(p.Original.TypeID))
		}
	}
	reporter.Success("%d Custom Fields were copied!", len(customFields))

	if err := s.recordCustomFields(ctx, migration.ID, customFields); err != nil {
		return nil, s.fail(ctx, migration, err)
	}

	if err := s.migrationRepo.Complete(ctx, migration.ID, repository.MigrationStatusCompleted, ""); err != nil {
		return nil, fmt.Errorf("journal migration completion: %w", err)
	}
	reporter.Info("Done.")
	logger.Debug("migration completed", "issue_types", len(issueTypes), "custom_fields", len(customFields))

	migration, err = s.migrationRepo.GetMigration(ctx, migration.ID)
	if err != nil {
		return nil, err
	}
	return &MigrationResult{
		Migration:    migration,
		IssueTypes:   issueTypes,
		CustomFields: customFields,
	}, nil
}

// fail marks the run failed in the journal and returns cause, joined with
// any journal error.
func (s *MigrationService) fail(ctx context.Context, migration repository.Migration, cause error) error {
	if err := s.migrationRepo.Complete(context.WithoutCancel(ctx), migration.ID, repository.MigrationStatusFailed, cause.Error()); err != nil {
		return errors.Join(cause, fmt.Errorf("journal migration failure: %w", err))
	}
	return cause
}

func (s *MigrationService) recordIssueTypes(ctx context.Context, migrationID int64, pairs []models.IssueTypePair) error {
	mappings := make([]repository.IssueTypeMapping, len(pairs))
	for i, p := range pairs {
		mappings[i] = repository.IssueTypeMapping{
			MigrationID:       migrationID,
			SourceIssueTypeID: p.Original.ID,
			DestIssueTypeID:   p.Created.ID,
			Name:              p.Created.Name,
		}
	}
	if err := s.issueTypeMappingRepo.BulkCreate(ctx, mappings); err != nil {
		return fmt.Errorf("journal issue type mappings: %w", err)
	}
	if err := s.migrationRepo.UpdateIssueTypeProgress(ctx, migrationID, len(pairs), len(pairs)); err != nil {
		return fmt.Errorf("journal issue type progress: %w", err)
	}
	return nil
}

func (s *MigrationService) recordCustomFields(ctx context.Context, migrationID int64, pairs []models.CustomFieldPair) error {
	for _, p := range pairs {
		record := repository.CustomFieldMappingRecord{
			MigrationID:   migrationID,
			SourceFieldID: p.Original.ID,
			DestFieldID:   p.Created.ID,
			FieldName:     p.Created.Name,
			FieldType:     int(p.Original.TypeID),
			Degraded:      !p.Original.TypeID.Known(),
		}
		fieldMappingID, err := s.customFieldMappingRepo.Create(ctx, &record)
		if err != nil {
			return fmt.Errorf("journal custom field mapping: %w", err)
		}

		// Items are created in the order their names were sent.
		sourceItems, destItems := p.Original.Items(), p.Created.Items()
		itemMappings := make([]repository.CustomFieldItemMappingRecord, 0, len(sourceItems))
		for i := 0; i < len(sourceItems) && i < len(destItems); i++ {
			itemMappings = append(itemMappings, repository.CustomFieldItemMappingRecord{
				FieldMappingID: fieldMappingID,
				SourceItemID:   sourceItems[i].ID,
				DestItemID:     destItems[i].ID,
				ItemName:       destItems[i].Name,
			})
		}
		if err := s.customFieldItemMappingRepo.BulkCreate(ctx, itemMappings); err != nil {
			return fmt.Errorf("journal custom field items: %w", err)
		}
	}
	if err := s.migrationRepo.UpdateCustomFieldProgress(ctx, migrationID, len(pairs), len(pairs)); err != nil {
		return fmt.Errorf("journal custom field progress: %w", err)
	}
	return nil
}

func (s *MigrationService) GetMigration(ctx context.Context, id int64) (repository.Migration, error) {
	migration, err := s.migrationRepo.GetMigration(ctx, id)
	if err != nil {
		return repository.Migration{}, fmt.Errorf("get migration: %w", err)
	}
	return migration, nil
}

func (s *MigrationService) GetMigrations(ctx context.Context) ([]repository.Migration, error) {
	migrations, err := s.migrationRepo.GetMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("get migrations: %w", err)
	}
	return migrations, nil
}

func (s *MigrationService) GetMappings(ctx context.Context, id int64) (*MigrationMappings, error) {
	if _, err := s.migrationRepo.GetMigration(ctx, id); err != nil {
		return nil, fmt.Errorf("get migration: %w", err)
	}

	issueTypes, err := s.issueTypeMappingRepo.FindByMigrationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get issue type mappings: %w", err)
	}
	records, err := s.customFieldMappingRepo.FindByMigrationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get custom field mappings: %w", err)
	}

	mappings := &MigrationMappings{
		IssueTypes:   issueTypes,
		CustomFields: make([]CustomFieldMappingDetail, 0, len(records)),
	}
	for _, rec := range records {
		items, err := s.customFieldItemMappingRepo.FindByFieldMappingID(ctx, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("get custom field item mappings: %w", err)
		}
		mappings.CustomFields = append(mappings.CustomFields, CustomFieldMappingDetail{
			CustomFieldMappingRecord: rec,
			Items:                    items,
		})
	}
	if mappings.IssueTypes == nil {
		mappings.IssueTypes = []repository.IssueTypeMapping{}
	}
	return mappings, nil
}

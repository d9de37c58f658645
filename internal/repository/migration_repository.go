package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type MigrationStatus string

const (
	MigrationStatusRunning   MigrationStatus = "running"
	MigrationStatusCompleted MigrationStatus = "completed"
	MigrationStatusFailed    MigrationStatus = "failed"
)

var ErrMigrationNotFound = errors.New("migration not found")

type Migration struct {
	ID                    int64           `json:"id"`
	RunID                 string          `json:"run_id"`
	SourceProjectKey      string          `json:"source_project_key"`
	DestinationProjectKey string          `json:"destination_project_key"`
	Status                MigrationStatus `json:"status"`
	TotalIssueTypes       int             `json:"total_issue_types"`
	CopiedIssueTypes      int             `json:"copied_issue_types"`
	TotalCustomFields     int             `json:"total_custom_fields"`
	CopiedCustomFields    int             `json:"copied_custom_fields"`
	ErrorMessage          string          `json:"error_message,omitempty"`
	StartedAt             time.Time       `json:"started_at"`
	CompletedAt           *time.Time      `json:"completed_at,omitempty"`
}

type MigrationRepository struct {
	db *sql.DB
}

func NewMigrationRepository(db *sql.DB) *MigrationRepository {
	return &MigrationRepository{db: db}
}

const migrationColumns = `
	id, run_id, source_project_key, destination_project_key, status,
	total_issue_types, copied_issue_types, total_custom_fields, copied_custom_fields,
	error_message, started_at, completed_at
`

func (r *MigrationRepository) Create(ctx context.Context, migration *Migration) (int64, error) {
	if migration.StartedAt.IsZero() {
		migration.StartedAt = time.Now().UTC()
	}
	if migration.Status == "" {
		migration.Status = MigrationStatusRunning
	}

	query := `
	INSERT INTO migrations (run_id, source_project_key, destination_project_key, status, started_at)
        VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		migration.RunID,
		migration.SourceProjectKey,
		migration.DestinationProjectKey,
		migration.Status,
		migration.StartedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("create migration: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create migration: %w", err)
	}
	migration.ID = id
	return id, nil
}

func (r *MigrationRepository) UpdateIssueTypeProgress(ctx context.Context, id int64, total, copied int) error {
	query := `UPDATE migrations SET total_issue_types = ?, copied_issue_types = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, total, copied, id); err != nil {
		return fmt.Errorf("update issue type progress: %w", err)
	}
	return nil
}

func (r *MigrationRepository) UpdateCustomFieldProgress(ctx context.Context, id int64, total, copied int) error {
	query := `UPDATE migrations SET total_custom_fields = ?, copied_custom_fields = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, total, copied, id); err != nil {
		return fmt.Errorf("update custom field progress: %w", err)
	}
	return nil
}

// Complete closes the run with status and, for failed runs, the error text.
func (r *MigrationRepository) Complete(ctx context.Context, id int64, status MigrationStatus, errorMessage string) error {
	query := `UPDATE migrations SET status = ?, error_message = ?, completed_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, status, errorMessage, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("complete migration: %w", err)
	}
	return nil
}

func (r *MigrationRepository) GetMigrations(ctx context.Context) ([]Migration, error) {
	query := `SELECT ` + migrationColumns + ` FROM migrations ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get migrations: %w", err)
	}
	defer rows.Close()

	var migrations []Migration
	for rows.Next() {
		m, err := scanMigration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		migrations = append(migrations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate migrations: %w", err)
	}

	return migrations, nil
}

func (r *MigrationRepository) GetMigration(ctx context.Context, id int64) (Migration, error) {
	query := `SELECT ` + migrationColumns + ` FROM migrations WHERE id = ?`

	m, err := scanMigration(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Migration{}, fmt.Errorf("get migration %d: %w", id, ErrMigrationNotFound)
	}
	if err != nil {
		return Migration{}, fmt.Errorf("get migration %d: %w", id, err)
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMigration(row rowScanner) (Migration, error) {
	var m Migration
	err := row.Scan(
		&m.ID,
		&m.RunID,
		&m.SourceProjectKey,
		&m.DestinationProjectKey,
		&m.Status,
		&m.TotalIssueTypes,
		&m.CopiedIssueTypes,
		&m.TotalCustomFields,
		&m.CopiedCustomFields,
		&m.ErrorMessage,
		&m.StartedAt,
		&m.CompletedAt,
	)
	return m, err
}

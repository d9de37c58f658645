package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type IssueTypeMapping struct {
	ID                int64     `json:"id"`
	MigrationID       int64     `json:"migration_id"`
	SourceIssueTypeID int64     `json:"source_issue_type_id"`
	DestIssueTypeID   int64     `json:"dest_issue_type_id"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
}

type IssueTypeMappingRepository struct {
	db *sql.DB
}

func NewIssueTypeMappingRepository(db *sql.DB) *IssueTypeMappingRepository {
	return &IssueTypeMappingRepository{db: db}
}

func (r *IssueTypeMappingRepository) BulkCreate(ctx context.Context, mappings []IssueTypeMapping) (err error) {
	if len(mappings) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for issue type mappings: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO issue_type_mappings (migration_id, source_issue_type_id, dest_issue_type_id, name, created_at)
        VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare issue type mapping insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range mappings {
		m := &mappings[i]
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		_, err = stmt.ExecContext(ctx, m.MigrationID, m.SourceIssueTypeID, m.DestIssueTypeID, m.Name, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("create issue type mapping at index %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit issue type mappings: %w", err)
	}
	return nil
}

func (r *IssueTypeMappingRepository) FindByMigrationID(ctx context.Context, migrationID int64) ([]IssueTypeMapping, error) {
	query := `
		SELECT id, migration_id, source_issue_type_id, dest_issue_type_id, name, created_at
		FROM issue_type_mappings
		WHERE migration_id = ?
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, migrationID)
	if err != nil {
		return nil, fmt.Errorf("find issue type mappings by migration id: %w", err)
	}
	defer rows.Close()

	var mappings []IssueTypeMapping
	for rows.Next() {
		var m IssueTypeMapping
		if err := rows.Scan(&m.ID, &m.MigrationID, &m.SourceIssueTypeID, &m.DestIssueTypeID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issue type mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issue type mappings: %w", err)
	}
	return mappings, nil
}

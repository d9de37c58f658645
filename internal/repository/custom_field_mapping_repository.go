package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CustomFieldMappingRecord struct {
	ID            int64  `json:"id"`
	MigrationID   int64  `json:"migration_id"`
	SourceFieldID int64  `json:"source_field_id"`
	DestFieldID   int64  `json:"dest_field_id"`
	FieldName     string `json:"field_name"`
	FieldType     int    `json:"field_type"`
	// Degraded marks fields of an unrecognized kind, copied with the common
	// attributes only.
	Degraded  bool      `json:"degraded"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomFieldMappingRepository struct {
	db *sql.DB
}

func NewCustomFieldMappingRepository(db *sql.DB) *CustomFieldMappingRepository {
	return &CustomFieldMappingRepository{db: db}
}

func (r *CustomFieldMappingRepository) Create(ctx context.Context, mapping *CustomFieldMappingRecord) (int64, error) {
	query := `
		INSERT INTO custom_field_mappings (
			migration_id, source_field_id, dest_field_id, field_name, field_type, degraded, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	degraded := 0
	if mapping.Degraded {
		degraded = 1
	}
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now().UTC()
	}
	result, err := r.db.ExecContext(ctx, query,
		mapping.MigrationID,
		mapping.SourceFieldID,
		mapping.DestFieldID,
		mapping.FieldName,
		mapping.FieldType,
		degraded,
		mapping.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("create custom field mapping: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create custom field mapping: %w", err)
	}
	mapping.ID = id
	return id, nil
}

func (r *CustomFieldMappingRepository) FindByMigrationID(ctx context.Context, migrationID int64) ([]CustomFieldMappingRecord, error) {
	query := `
		SELECT id, migration_id, source_field_id, dest_field_id, field_name, field_type, degraded, created_at
		FROM custom_field_mappings
		WHERE migration_id = ?
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, migrationID)
	if err != nil {
		return nil, fmt.Errorf("find custom field mappings by migration id: %w", err)
	}
	defer rows.Close()

	var records []CustomFieldMappingRecord
	for rows.Next() {
		var rec CustomFieldMappingRecord
		var degraded int
		err := rows.Scan(
			&rec.ID,
			&rec.MigrationID,
			&rec.SourceFieldID,
			&rec.DestFieldID,
			&rec.FieldName,
			&rec.FieldType,
			&degraded,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan custom field mapping: %w", err)
		}
		rec.Degraded = degraded != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom field mappings: %w", err)
	}
	return records, nil
}

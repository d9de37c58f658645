package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type CustomFieldItemMappingRecord struct {
	ID             int64  `json:"id"`
	FieldMappingID int64  `json:"field_mapping_id"`
	SourceItemID   int64  `json:"source_item_id"`
	DestItemID     int64  `json:"dest_item_id"`
	ItemName       string `json:"item_name"`
}

type CustomFieldItemMappingRepository struct {
	db *sql.DB
}

func NewCustomFieldItemMappingRepository(db *sql.DB) *CustomFieldItemMappingRepository {
	return &CustomFieldItemMappingRepository{db: db}
}

func (r *CustomFieldItemMappingRepository) BulkCreate(ctx context.Context, mappings []CustomFieldItemMappingRecord) (err error) {
	if len(mappings) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for bulk create item mappings: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO custom_field_item_mappings (
			field_mapping_id, source_item_id, dest_item_id, item_name
		) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare bulk insert item mappings: %w", err)
	}
	defer stmt.Close()

	for i := range mappings {
		m := &mappings[i]
		_, err = stmt.ExecContext(ctx, m.FieldMappingID, m.SourceItemID, m.DestItemID, m.ItemName)
		if err != nil {
			return fmt.Errorf("bulk create item mapping at index %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create item mappings: %w", err)
	}
	return nil
}

func (r *CustomFieldItemMappingRepository) FindByFieldMappingID(ctx context.Context, fieldMappingID int64) ([]CustomFieldItemMappingRecord, error) {
	query := `
		SELECT id, field_mapping_id, source_item_id, dest_item_id, item_name
		FROM custom_field_item_mappings
		WHERE field_mapping_id = ?
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, fieldMappingID)
	if err != nil {
		return nil, fmt.Errorf("find custom field item mappings by field mapping id: %w", err)
	}
	defer rows.Close()

	var records []CustomFieldItemMappingRecord
	for rows.Next() {
		var rec CustomFieldItemMappingRecord
		err := rows.Scan(
			&rec.ID,
			&rec.FieldMappingID,
			&rec.SourceItemID,
			&rec.DestItemID,
			&rec.ItemName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan custom field item mapping: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom field item mappings: %w", err)
	}
	return records, nil
}

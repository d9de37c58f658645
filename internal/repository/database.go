package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// InitDB opens the run journal at dbPath, creating the file and its tables
// when missing. An empty dbPath opens a private in-memory journal.
func InitDB(dbPath string) (*sql.DB, error) {
	dsn := dbPath
	if dbPath == "" {
		dsn = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// Every connection to ":memory:" is a separate database, and SQLite only
	// allows one writer anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS migrations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL UNIQUE,
        source_project_key TEXT NOT NULL,
        destination_project_key TEXT NOT NULL,
        status TEXT NOT NULL,
        total_issue_types INTEGER NOT NULL DEFAULT 0,
        copied_issue_types INTEGER NOT NULL DEFAULT 0,
        total_custom_fields INTEGER NOT NULL DEFAULT 0,
        copied_custom_fields INTEGER NOT NULL DEFAULT 0,
        error_message TEXT NOT NULL DEFAULT '',
        started_at DATETIME NOT NULL,
        completed_at DATETIME
    );

    CREATE TABLE IF NOT EXISTS issue_type_mappings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        migration_id INTEGER NOT NULL,
        source_issue_type_id INTEGER NOT NULL,
        dest_issue_type_id INTEGER NOT NULL,
        name TEXT NOT NULL,
        created_at DATETIME NOT NULL,
        FOREIGN KEY (migration_id) REFERENCES migrations(id)
    );

    CREATE TABLE IF NOT EXISTS custom_field_mappings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        migration_id INTEGER NOT NULL,
        source_field_id INTEGER NOT NULL,
        dest_field_id INTEGER NOT NULL,
        field_name TEXT NOT NULL,
        field_type INTEGER NOT NULL,
        degraded INTEGER NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL,
        FOREIGN KEY (migration_id) REFERENCES migrations(id)
    );

    CREATE TABLE IF NOT EXISTS custom_field_item_mappings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        field_mapping_id INTEGER NOT NULL,
        source_item_id INTEGER NOT NULL,
        dest_item_id INTEGER NOT NULL,
        item_name TEXT NOT NULL,
        FOREIGN KEY (field_mapping_id) REFERENCES custom_field_mappings(id)
    );
    `

	_, err := db.Exec(schema)
	return err
}

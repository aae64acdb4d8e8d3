package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the latest schema version supported by the migrator.
const SchemaVersion = 1

// Open opens (creating if needed) the SQLite database at path and applies
// pending migrations.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate ensures the schema exists and is upgraded to SchemaVersion.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS campaign_runs (
			id TEXT PRIMARY KEY,
			signal_type TEXT NOT NULL,
			trials INTEGER NOT NULL,
			tolerance REAL NOT NULL,
			seed INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			recovered INTEGER NOT NULL,
			fraction REAL NOT NULL,
			created_utc INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: create campaign_runs table: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS campaign_trials (
			run_id TEXT NOT NULL,
			trial_index INTEGER NOT NULL,
			injected TEXT NOT NULL,
			recovered TEXT NULL,
			objective REAL NOT NULL,
			converged INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, trial_index),
			FOREIGN KEY (run_id) REFERENCES campaign_runs(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate: create campaign_trials table: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?);`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("migrate: record version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}

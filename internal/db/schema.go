package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// Tests use this schema via GetSchemaSQL() instead of hardcoding their own,
// so a repository referencing a missing column fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run the db package tests to verify the two stay aligned
const SchemaSQL = `
-- Mazes (imported maze library)
CREATE TABLE IF NOT EXISTS mazes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	layout TEXT NOT NULL,
	rows_count INTEGER NOT NULL,
	cols_count INTEGER NOT NULL,
	has_start INTEGER NOT NULL DEFAULT 0,
	start_row INTEGER NOT NULL DEFAULT 0,
	start_col INTEGER NOT NULL DEFAULT 0,
	directions TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Runs (one row per exploration)
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	maze_id TEXT,
	maze_name TEXT NOT NULL,
	start_row INTEGER NOT NULL,
	start_col INTEGER NOT NULL,
	directions TEXT,
	status TEXT NOT NULL CHECK(status IN ('found', 'no_exit', 'timeout', 'cancelled', 'failed')),
	exit_row INTEGER,
	exit_col INTEGER,
	probes INTEGER NOT NULL DEFAULT 0,
	batches INTEGER NOT NULL DEFAULT 0,
	largest_batch INTEGER NOT NULL DEFAULT 0,
	late_results INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	requested_by TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (maze_id) REFERENCES mazes(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_maze ON runs(maze_id);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Audit log (maze library changes)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('maze', 'run')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'delete')),
	actor TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
`

// InitSchema creates the database schema on database.
func InitSchema(database *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(database)
	}

	// Fresh install - create the current schema directly and mark every
	// migration as applied.
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := database.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

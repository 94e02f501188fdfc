package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_mazes_and_runs",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_batch_stats_to_runs",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "create_audit_log",
		Up:      migrationV3,
	},
}

const schemaVersionSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// RunMigrations executes all pending migrations
func RunMigrations(database *sql.DB) error {
	if _, err := database.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// SchemaVersion returns the highest applied migration, or 0.
func SchemaVersion(database *sql.DB) (int, error) {
	var version int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// LatestSchemaVersion returns the version of the newest known migration.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// migrationV1 creates the maze library and the run log
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create mazes table: %w", err)
	}

	_, err = tx.Exec(`
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
			duration_ms INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			requested_by TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (maze_id) REFERENCES mazes(id) ON DELETE SET NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	return nil
}

// migrationV2 records batch statistics per run
func migrationV2(tx *sql.Tx) error {
	statements := []string{
		"ALTER TABLE runs ADD COLUMN batches INTEGER NOT NULL DEFAULT 0",
		"ALTER TABLE runs ADD COLUMN largest_batch INTEGER NOT NULL DEFAULT 0",
		"ALTER TABLE runs ADD COLUMN late_results INTEGER NOT NULL DEFAULT 0",
		"CREATE INDEX IF NOT EXISTS idx_runs_maze ON runs(maze_id)",
		"CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)",
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

// migrationV3 adds the audit log for library changes
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			entity_type TEXT NOT NULL CHECK(entity_type IN ('maze', 'run')),
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('create', 'delete')),
			actor TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create audit_log table: %w", err)
	}

	_, err = tx.Exec("CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id)")
	if err != nil {
		return fmt.Errorf("failed to create audit_log index: %w", err)
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/mazeprobe/internal/geometry"
)

// SeedFixtures populates the database with development fixtures: every sample
// maze, a found run and a timed-out run, and the matching audit entries.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	// Mazes
	ids := make(map[string]string)
	for i, s := range geometry.Samples() {
		grid, err := geometry.NewGrid(s.Rows)
		if err != nil {
			return fmt.Errorf("seed maze %s: %w", s.Name, err)
		}
		rows, cols := grid.Size()
		start, hasStart := grid.Start()

		id := fmt.Sprintf("MAZE-%03d", i+1)
		ids[s.Name] = id
		if _, err := database.Exec(
			`INSERT INTO mazes (id, name, description, layout, rows_count, cols_count, has_start, start_row, start_col, directions, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, '', ?)`,
			id, s.Name, s.Description, grid.String(), rows, cols, hasStart, start.Row, start.Col, now,
		); err != nil {
			return fmt.Errorf("seed mazes: %w", err)
		}
	}

	// Runs
	runs := []struct {
		id, maze, dirs, status, errText string
		exitRow, exitCol                sql.NullInt64
		probes, batches, durationMS     int
	}{
		{"RUN-001", "tiny", "north,east", "found", "", sql.NullInt64{Int64: 0, Valid: true}, sql.NullInt64{Int64: 1, Valid: true}, 4, 2, 12},
		{"RUN-002", "sealed", "", "timeout", "context deadline exceeded", sql.NullInt64{}, sql.NullInt64{}, 0, 0, 30000},
	}
	for _, r := range runs {
		if _, err := database.Exec(
			`INSERT INTO runs (id, maze_id, maze_name, start_row, start_col, directions, status, exit_row, exit_col,
			 probes, batches, largest_batch, duration_ms, error, requested_by, created_at)
			 VALUES (?, ?, ?, 1, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'dev', ?)`,
			r.id, ids[r.maze], r.maze, r.dirs, r.status, r.exitRow, r.exitCol,
			r.probes, r.batches, r.batches, r.durationMS, r.errText, now,
		); err != nil {
			return fmt.Errorf("seed runs: %w", err)
		}
	}

	// Audit log
	n := 0
	logEntry := func(entityType, entityID string) error {
		n++
		_, err := database.Exec(
			"INSERT INTO audit_log (id, entity_type, entity_id, action, actor, created_at) VALUES (?, ?, ?, 'create', 'dev', ?)",
			fmt.Sprintf("LOG-%03d", n), entityType, entityID, now,
		)
		return err
	}
	for _, s := range geometry.Samples() {
		if err := logEntry("maze", ids[s.Name]); err != nil {
			return fmt.Errorf("seed audit log: %w", err)
		}
	}
	for _, r := range runs {
		if err := logEntry("run", r.id); err != nil {
			return fmt.Errorf("seed audit log: %w", err)
		}
	}

	return nil
}

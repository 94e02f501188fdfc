package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// RunRepository implements secondary.RunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

const runSelectCols = `id, maze_id, maze_name, start_row, start_col, directions, status,
	exit_row, exit_col, probes, batches, largest_batch, late_results, duration_ms,
	error, requested_by, created_at`

// Create persists a finished run. The exit is stored only for found runs.
func (r *RunRepository) Create(ctx context.Context, run *secondary.RunRecord) error {
	var exitRow, exitCol sql.NullInt64
	if run.Status == "found" {
		exitRow = sql.NullInt64{Int64: int64(run.ExitRow), Valid: true}
		exitCol = sql.NullInt64{Int64: int64(run.ExitCol), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, maze_id, maze_name, start_row, start_col, directions, status,
			exit_row, exit_col, probes, batches, largest_batch, late_results, duration_ms,
			error, requested_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, nullString(run.MazeID), run.MazeName, run.StartRow, run.StartCol,
		nullString(run.Directions), run.Status, exitRow, exitCol,
		run.Probes, run.Batches, run.LargestBatch, run.LateResults, run.DurationMS,
		nullString(run.Error), nullString(run.RequestedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*secondary.RunRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+runSelectCols+" FROM runs WHERE id = ?", id)
	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// List retrieves runs matching the given filters, newest first.
func (r *RunRepository) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	query := "SELECT " + runSelectCols + " FROM runs WHERE 1=1"
	args := []any{}

	if filters.MazeID != "" {
		query += " AND maze_id = ?"
		args = append(args, filters.MazeID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	// IDs grow monotonically, so they break ties within one second.
	query += " ORDER BY created_at DESC, CAST(SUBSTR(id, 5) AS INTEGER) DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// GetNextID returns the next available run ID.
func (r *RunRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM runs",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next run ID: %w", err)
	}

	return maze.GenerateRunID(maxID), nil
}

func scanRun(row rowScanner) (*secondary.RunRecord, error) {
	var (
		mazeID      sql.NullString
		directions  sql.NullString
		exitRow     sql.NullInt64
		exitCol     sql.NullInt64
		errText     sql.NullString
		requestedBy sql.NullString
		createdAt   time.Time
	)

	record := &secondary.RunRecord{}
	err := row.Scan(
		&record.ID, &mazeID, &record.MazeName, &record.StartRow, &record.StartCol,
		&directions, &record.Status, &exitRow, &exitCol,
		&record.Probes, &record.Batches, &record.LargestBatch, &record.LateResults,
		&record.DurationMS, &errText, &requestedBy, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.MazeID = mazeID.String
	record.Directions = directions.String
	record.ExitRow = int(exitRow.Int64)
	record.ExitCol = int(exitCol.Int64)
	record.Error = errText.String
	record.RequestedBy = requestedBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

var _ secondary.RunRepository = (*RunRepository)(nil)

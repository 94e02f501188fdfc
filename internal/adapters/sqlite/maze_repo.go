// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// MazeRepository implements secondary.MazeRepository with SQLite.
type MazeRepository struct {
	db *sql.DB
}

// NewMazeRepository creates a new SQLite maze repository.
func NewMazeRepository(db *sql.DB) *MazeRepository {
	return &MazeRepository{db: db}
}

const mazeSelectCols = "id, name, description, layout, rows_count, cols_count, has_start, start_row, start_col, directions, created_at"

// Create persists a new maze.
func (r *MazeRepository) Create(ctx context.Context, record *secondary.MazeRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mazes (id, name, description, layout, rows_count, cols_count, has_start, start_row, start_col, directions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Name, nullString(record.Description), record.Layout,
		record.Rows, record.Cols, record.HasStart, record.StartRow, record.StartCol,
		nullString(record.Directions),
	)
	if err != nil {
		return fmt.Errorf("failed to create maze: %w", err)
	}

	return nil
}

// GetByID retrieves a maze by its ID.
func (r *MazeRepository) GetByID(ctx context.Context, id string) (*secondary.MazeRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+mazeSelectCols+" FROM mazes WHERE id = ?", id)
	record, err := scanMaze(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("maze %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maze: %w", err)
	}
	return record, nil
}

// GetByName retrieves a maze by its unique name.
func (r *MazeRepository) GetByName(ctx context.Context, name string) (*secondary.MazeRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+mazeSelectCols+" FROM mazes WHERE name = ?", name)
	record, err := scanMaze(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("maze '%s' not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maze: %w", err)
	}
	return record, nil
}

// List retrieves all mazes ordered by name.
func (r *MazeRepository) List(ctx context.Context) ([]*secondary.MazeRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+mazeSelectCols+" FROM mazes ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}
	defer rows.Close()

	var mazes []*secondary.MazeRecord
	for rows.Next() {
		record, err := scanMaze(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maze: %w", err)
		}
		mazes = append(mazes, record)
	}

	return mazes, rows.Err()
}

// Delete removes a maze from persistence. Runs keep their maze name.
func (r *MazeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM mazes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete maze: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("maze %s not found", id)
	}

	return nil
}

// GetNextID returns the next available maze ID.
func (r *MazeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM mazes",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next maze ID: %w", err)
	}

	return maze.GenerateMazeID(maxID), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaze(row rowScanner) (*secondary.MazeRecord, error) {
	var (
		desc       sql.NullString
		directions sql.NullString
		createdAt  time.Time
	)

	record := &secondary.MazeRecord{}
	err := row.Scan(
		&record.ID, &record.Name, &desc, &record.Layout,
		&record.Rows, &record.Cols, &record.HasStart, &record.StartRow, &record.StartCol,
		&directions, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.Directions = directions.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ secondary.MazeRepository = (*MazeRepository)(nil)

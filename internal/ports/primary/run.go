package primary

import (
	"context"

	"github.com/example/mazeprobe/internal/core/maze"
)

// RunService defines the primary port for the run log.
type RunService interface {
	// ListRuns retrieves runs matching the given filters, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*Run, error)

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, runID string) (*Run, error)
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	Maze   string // Maze ID or name
	Status string
	Limit  int
}

// Run represents a recorded exploration at the port boundary.
type Run struct {
	ID           string
	MazeID       string
	MazeName     string
	Start        maze.Location
	Directions   []maze.Direction
	Status       string
	Exit         *maze.Location
	Probes       int
	Batches      int
	LargestBatch int
	LateResults  int
	DurationMS   int64
	Error        string
	RequestedBy  string
	CreatedAt    string
}

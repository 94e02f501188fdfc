// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// MazeRepository defines the secondary port for the maze library.
type MazeRepository interface {
	// Create persists a new maze.
	Create(ctx context.Context, maze *MazeRecord) error

	// GetByID retrieves a maze by its ID.
	GetByID(ctx context.Context, id string) (*MazeRecord, error)

	// GetByName retrieves a maze by its unique name.
	GetByName(ctx context.Context, name string) (*MazeRecord, error)

	// List retrieves all mazes ordered by name.
	List(ctx context.Context) ([]*MazeRecord, error)

	// Delete removes a maze from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available maze ID.
	GetNextID(ctx context.Context) (string, error)
}

// MazeRecord represents a maze as stored in persistence.
type MazeRecord struct {
	ID          string
	Name        string
	Description string
	Layout      string // Grid text, one line per row
	Rows        int
	Cols        int
	HasStart    bool
	StartRow    int
	StartCol    int
	Directions  string // Comma-separated initial directions; empty means derive from layout
	CreatedAt   string
}

// RunRepository defines the secondary port for the exploration run log.
type RunRepository interface {
	// Create persists a finished run.
	Create(ctx context.Context, run *RunRecord) error

	// GetByID retrieves a run by its ID.
	GetByID(ctx context.Context, id string) (*RunRecord, error)

	// List retrieves runs matching the given filters, newest first.
	List(ctx context.Context, filters RunFilters) ([]*RunRecord, error)

	// GetNextID returns the next available run ID.
	GetNextID(ctx context.Context) (string, error)
}

// RunRecord represents one exploration as stored in persistence.
type RunRecord struct {
	ID           string
	MazeID       string // Empty for ad-hoc layouts that are not in the library
	MazeName     string
	StartRow     int
	StartCol     int
	Directions   string
	Status       string // found, no_exit, timeout, cancelled, failed
	ExitRow      int
	ExitCol      int
	Probes       int
	Batches      int
	LargestBatch int
	LateResults  int
	DurationMS   int64
	Error        string
	RequestedBy  string
	CreatedAt    string
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	MazeID string
	Status string
	Limit  int
}

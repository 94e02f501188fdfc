package primary

import (
	"context"

	"github.com/example/mazeprobe/internal/core/maze"
)

// MazeService defines the primary port for the maze library.
type MazeService interface {
	// ImportMaze parses a text layout or YAML manifest and stores it.
	ImportMaze(ctx context.Context, req ImportMazeRequest) (*ImportMazeResponse, error)

	// GetMaze retrieves a maze by ID (MAZE-xxx) or name.
	GetMaze(ctx context.Context, ref string) (*Maze, error)

	// ListMazes retrieves all mazes ordered by name.
	ListMazes(ctx context.Context) ([]*Maze, error)

	// DeleteMaze deletes a maze by ID or name. Its runs are kept.
	DeleteMaze(ctx context.Context, ref string) error

	// SeedSampleMazes imports the built-in mazes that are not yet in the library.
	SeedSampleMazes(ctx context.Context) (*SeedResult, error)
}

// ImportMazeRequest contains parameters for importing a maze.
type ImportMazeRequest struct {
	Name        string // Used when the data carries no name of its own
	Description string // Overrides the manifest description when set
	Data        []byte
}

// ImportMazeResponse contains the result of importing a maze.
type ImportMazeResponse struct {
	MazeID string
	Maze   *Maze
}

// SeedResult lists what SeedSampleMazes did.
type SeedResult struct {
	Created []string // Names imported by this call
	Skipped []string // Names already present
}

// Maze represents a library maze at the port boundary.
type Maze struct {
	ID          string
	Name        string
	Description string
	Layout      string
	Rows        int
	Cols        int
	Start       *maze.Location   // nil when the layout has no S marker and no explicit start
	Directions  []maze.Direction // nil means derive from the start's open neighbours
	Exits       int
	CreatedAt   string
}

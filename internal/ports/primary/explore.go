package primary

import (
	"context"
	"time"

	"github.com/example/mazeprobe/internal/core/maze"
)

// Run statuses.
const (
	RunStatusFound     = "found"
	RunStatusNoExit    = "no_exit"
	RunStatusTimeout   = "timeout"
	RunStatusCancelled = "cancelled"
	RunStatusFailed    = "failed"
)

// ExploreService defines the primary port for running explorations.
type ExploreService interface {
	// Explore searches one maze for an exit and records the run. Outcomes
	// other than a contract violation are reported through the response
	// status, not as errors.
	Explore(ctx context.Context, req ExploreRequest) (*ExploreResponse, error)
}

// ExploreObserver receives live progress. Calls arrive while the exploration
// holds its lock and must return quickly.
type ExploreObserver interface {
	ProbeSubmitted(id maze.ProbeID, loc maze.Location)
	BatchDrained(size int)
	ExitFound(loc maze.Location)
}

// ExploreRequest contains parameters for one exploration. Nil overrides fall
// back to the service defaults.
type ExploreRequest struct {
	Maze       string // Library maze ID or name
	Layout     []byte // Ad-hoc layout (text or manifest), used when Maze is empty
	LayoutName string

	Start      *maze.Location
	Directions []maze.Direction

	MaxDelay         *time.Duration
	Timeout          *time.Duration
	DetectExhaustion *bool
	Seed             *uint64

	Observer ExploreObserver
}

// ExploreResponse describes a finished exploration.
type ExploreResponse struct {
	RunID      string
	MazeName   string
	Status     string
	Start      maze.Location
	Directions []maze.Direction
	Exit       *maze.Location
	Stats      ExploreStats
	Duration   time.Duration
	Error      string
}

// ExploreStats are the coordinator counters of a run.
type ExploreStats struct {
	Probes       int
	Results      int
	Batches      int
	LargestBatch int
	LateResults  int
}

package app

import (
	"context"
	"fmt"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// RunServiceImpl implements the RunService interface.
type RunServiceImpl struct {
	runRepo  secondary.RunRepository
	mazeRepo secondary.MazeRepository
}

// NewRunService creates a new RunService with injected dependencies.
func NewRunService(runRepo secondary.RunRepository, mazeRepo secondary.MazeRepository) *RunServiceImpl {
	return &RunServiceImpl{
		runRepo:  runRepo,
		mazeRepo: mazeRepo,
	}
}

// ListRuns retrieves runs matching the given filters, newest first.
func (s *RunServiceImpl) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error) {
	repoFilters := secondary.RunFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	}
	if filters.Maze != "" {
		record, err := lookupMaze(ctx, s.mazeRepo, filters.Maze)
		if err != nil {
			return nil, err
		}
		repoFilters.MazeID = record.ID
	}

	records, err := s.runRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		runs[i] = recordToRun(r)
	}
	return runs, nil
}

// GetRun retrieves a run by ID.
func (s *RunServiceImpl) GetRun(ctx context.Context, runID string) (*primary.Run, error) {
	if maze.ParseRunNumber(runID) < 0 {
		return nil, fmt.Errorf("invalid run ID %q", runID)
	}
	record, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return recordToRun(record), nil
}

func recordToRun(r *secondary.RunRecord) *primary.Run {
	// Stored directions were written by FormatDirections; a parse failure
	// leaves the list empty rather than hiding the run.
	dirs, _ := maze.ParseDirections(r.Directions)

	run := &primary.Run{
		ID:           r.ID,
		MazeID:       r.MazeID,
		MazeName:     r.MazeName,
		Start:        maze.Location{Row: r.StartRow, Col: r.StartCol},
		Directions:   dirs,
		Status:       r.Status,
		Probes:       r.Probes,
		Batches:      r.Batches,
		LargestBatch: r.LargestBatch,
		LateResults:  r.LateResults,
		DurationMS:   r.DurationMS,
		Error:        r.Error,
		RequestedBy:  r.RequestedBy,
		CreatedAt:    r.CreatedAt,
	}
	if r.Status == primary.RunStatusFound {
		run.Exit = &maze.Location{Row: r.ExitRow, Col: r.ExitCol}
	}
	return run
}

// Ensure RunServiceImpl implements the interface
var _ primary.RunService = (*RunServiceImpl)(nil)

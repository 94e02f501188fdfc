package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/mazeprobe/internal/coordinator"
	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ctxutil"
	"github.com/example/mazeprobe/internal/geometry"
	"github.com/example/mazeprobe/internal/ports/primary"
	"github.com/example/mazeprobe/internal/ports/secondary"
	"github.com/example/mazeprobe/internal/prober"
)

// ExploreDefaults are applied when a request leaves a setting unset.
type ExploreDefaults struct {
	MaxDelay         time.Duration
	Timeout          time.Duration // Zero disables the timeout
	DetectExhaustion bool
}

// ExploreServiceImpl implements the ExploreService interface.
type ExploreServiceImpl struct {
	mazeRepo  secondary.MazeRepository
	runRepo   secondary.RunRepository
	logWriter secondary.LogWriter
	defaults  ExploreDefaults
	now       func() time.Time
}

// NewExploreService creates a new ExploreService with injected dependencies.
// logWriter may be nil.
func NewExploreService(
	mazeRepo secondary.MazeRepository,
	runRepo secondary.RunRepository,
	logWriter secondary.LogWriter,
	defaults ExploreDefaults,
) *ExploreServiceImpl {
	return &ExploreServiceImpl{
		mazeRepo:  mazeRepo,
		runRepo:   runRepo,
		logWriter: logWriter,
		defaults:  defaults,
		now:       time.Now,
	}
}

// Explore searches one maze for an exit and records the run.
func (s *ExploreServiceImpl) Explore(ctx context.Context, req primary.ExploreRequest) (*primary.ExploreResponse, error) {
	target, mazeID, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	start, dirs, err := resolveStartAndDirections(target, req)
	if err != nil {
		return nil, err
	}

	settings := s.settingsFor(req)

	proberOpts := []prober.Option{prober.WithMaxDelay(settings.MaxDelay)}
	if req.Seed != nil {
		proberOpts = append(proberOpts, prober.WithSeed(*req.Seed))
	}
	p := prober.New(target.Grid, proberOpts...)

	coordOpts := []coordinator.Option{coordinator.WithExhaustionDetection(settings.DetectExhaustion)}
	if req.Observer != nil {
		coordOpts = append(coordOpts, coordinator.WithObserver(req.Observer))
	}
	c := coordinator.New(p, coordOpts...)

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if settings.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, settings.Timeout)
	}

	began := s.now()
	exit, findErr := c.FindExit(runCtx, start, dirs)
	duration := s.now().Sub(began)
	cancel()

	// Let outstanding probes deliver so late results are counted.
	p.Close()
	p.Wait()

	stats := c.Stats()
	resp := &primary.ExploreResponse{
		MazeName:   target.Name,
		Status:     classifyOutcome(findErr),
		Start:      start,
		Directions: dirs,
		Stats: primary.ExploreStats{
			Probes:       stats.Submitted,
			Results:      stats.Results,
			Batches:      stats.Batches,
			LargestBatch: stats.LargestBatch,
			LateResults:  stats.LateResults,
		},
		Duration: duration,
	}
	if findErr == nil {
		resp.Exit = &exit
	} else {
		resp.Error = findErr.Error()
	}

	runID, err := s.recordRun(ctx, mazeID, resp)
	if err != nil {
		return resp, err
	}
	resp.RunID = runID

	if resp.Status == primary.RunStatusFailed {
		return resp, fmt.Errorf("exploration of %s failed: %w", target.Name, findErr)
	}
	return resp, nil
}

// resolveTarget loads the library maze or parses the ad-hoc layout.
func (s *ExploreServiceImpl) resolveTarget(ctx context.Context, req primary.ExploreRequest) (*geometry.Maze, string, error) {
	if req.Maze != "" {
		record, err := lookupMaze(ctx, s.mazeRepo, req.Maze)
		if err != nil {
			return nil, "", err
		}
		m, err := recordToGeometry(record)
		if err != nil {
			return nil, "", err
		}
		return m, record.ID, nil
	}

	if len(req.Layout) == 0 {
		return nil, "", fmt.Errorf("either a maze or a layout is required")
	}
	name := req.LayoutName
	if name == "" {
		name = "adhoc"
	}
	m, err := geometry.ParseMaze(name, req.Layout)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse layout: %w", err)
	}
	return m, "", nil
}

func resolveStartAndDirections(target *geometry.Maze, req primary.ExploreRequest) (maze.Location, []maze.Direction, error) {
	var start maze.Location
	if req.Start != nil {
		start = *req.Start
	} else {
		resolved, err := target.ResolveStart()
		if err != nil {
			return maze.Location{}, nil, err
		}
		start = resolved
	}
	if err := target.ValidateStart(start); err != nil {
		return maze.Location{}, nil, err
	}

	dirs := req.Directions
	if dirs == nil {
		dirs = target.ResolveDirections(start)
	}
	return start, dirs, nil
}

func (s *ExploreServiceImpl) settingsFor(req primary.ExploreRequest) ExploreDefaults {
	settings := s.defaults
	if req.MaxDelay != nil {
		settings.MaxDelay = *req.MaxDelay
	}
	if req.Timeout != nil {
		settings.Timeout = *req.Timeout
	}
	if req.DetectExhaustion != nil {
		settings.DetectExhaustion = *req.DetectExhaustion
	}
	return settings
}

// classifyOutcome maps the result of FindExit to a run status.
func classifyOutcome(err error) string {
	switch {
	case err == nil:
		return primary.RunStatusFound
	case errors.Is(err, coordinator.ErrNoExit):
		return primary.RunStatusNoExit
	case errors.Is(err, context.DeadlineExceeded):
		return primary.RunStatusTimeout
	case errors.Is(err, context.Canceled):
		return primary.RunStatusCancelled
	default:
		return primary.RunStatusFailed
	}
}

func (s *ExploreServiceImpl) recordRun(ctx context.Context, mazeID string, resp *primary.ExploreResponse) (string, error) {
	// The run is recorded even if the caller's context was cancelled.
	ctx = context.WithoutCancel(ctx)

	runID, err := s.runRepo.GetNextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate run ID: %w", err)
	}

	record := &secondary.RunRecord{
		ID:           runID,
		MazeID:       mazeID,
		MazeName:     resp.MazeName,
		StartRow:     resp.Start.Row,
		StartCol:     resp.Start.Col,
		Directions:   maze.FormatDirections(resp.Directions),
		Status:       resp.Status,
		Probes:       resp.Stats.Probes,
		Batches:      resp.Stats.Batches,
		LargestBatch: resp.Stats.LargestBatch,
		LateResults:  resp.Stats.LateResults,
		DurationMS:   resp.Duration.Milliseconds(),
		Error:        resp.Error,
		RequestedBy:  ctxutil.ActorFromContext(ctx),
	}
	if resp.Exit != nil {
		record.ExitRow = resp.Exit.Row
		record.ExitCol = resp.Exit.Col
	}

	if err := s.runRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, "run", runID)
	}
	return runID, nil
}

// Ensure ExploreServiceImpl implements the interface
var _ primary.ExploreService = (*ExploreServiceImpl)(nil)

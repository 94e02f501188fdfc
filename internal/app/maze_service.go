package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/geometry"
	"github.com/example/mazeprobe/internal/ports/primary"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// MazeServiceImpl implements the MazeService interface.
type MazeServiceImpl struct {
	mazeRepo  secondary.MazeRepository
	logWriter secondary.LogWriter
}

// NewMazeService creates a new MazeService with injected dependencies.
// logWriter may be nil.
func NewMazeService(mazeRepo secondary.MazeRepository, logWriter secondary.LogWriter) *MazeServiceImpl {
	return &MazeServiceImpl{
		mazeRepo:  mazeRepo,
		logWriter: logWriter,
	}
}

// ImportMaze parses a text layout or YAML manifest and stores it.
func (s *MazeServiceImpl) ImportMaze(ctx context.Context, req primary.ImportMazeRequest) (*primary.ImportMazeResponse, error) {
	parsed, err := geometry.ParseMaze(req.Name, req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse maze: %w", err)
	}
	if req.Description != "" {
		parsed.Description = req.Description
	}
	return s.store(ctx, parsed)
}

func (s *MazeServiceImpl) store(ctx context.Context, parsed *geometry.Maze) (*primary.ImportMazeResponse, error) {
	if strings.TrimSpace(parsed.Name) == "" {
		return nil, fmt.Errorf("maze name is required")
	}
	if isMazeID(parsed.Name) {
		return nil, fmt.Errorf("maze name %q looks like a maze ID", parsed.Name)
	}
	if _, err := s.mazeRepo.GetByName(ctx, parsed.Name); err == nil {
		return nil, fmt.Errorf("maze '%s' already exists", parsed.Name)
	}

	nextID, err := s.mazeRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate maze ID: %w", err)
	}

	rows, cols := parsed.Grid.Size()
	record := &secondary.MazeRecord{
		ID:          nextID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Layout:      parsed.Grid.String(),
		Rows:        rows,
		Cols:        cols,
		Directions:  maze.FormatDirections(parsed.Directions),
	}
	if parsed.Start != nil {
		record.HasStart = true
		record.StartRow = parsed.Start.Row
		record.StartCol = parsed.Start.Col
	}

	if err := s.mazeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create maze: %w", err)
	}
	s.logCreate(ctx, "maze", nextID)

	created, err := s.mazeRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created maze: %w", err)
	}

	m, err := recordToMaze(created)
	if err != nil {
		return nil, err
	}
	return &primary.ImportMazeResponse{MazeID: created.ID, Maze: m}, nil
}

// GetMaze retrieves a maze by ID or name.
func (s *MazeServiceImpl) GetMaze(ctx context.Context, ref string) (*primary.Maze, error) {
	record, err := lookupMaze(ctx, s.mazeRepo, ref)
	if err != nil {
		return nil, err
	}
	return recordToMaze(record)
}

// ListMazes retrieves all mazes ordered by name.
func (s *MazeServiceImpl) ListMazes(ctx context.Context) ([]*primary.Maze, error) {
	records, err := s.mazeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}

	mazes := make([]*primary.Maze, 0, len(records))
	for _, r := range records {
		m, err := recordToMaze(r)
		if err != nil {
			return nil, err
		}
		mazes = append(mazes, m)
	}
	return mazes, nil
}

// DeleteMaze deletes a maze by ID or name.
func (s *MazeServiceImpl) DeleteMaze(ctx context.Context, ref string) error {
	record, err := lookupMaze(ctx, s.mazeRepo, ref)
	if err != nil {
		return err
	}
	if err := s.mazeRepo.Delete(ctx, record.ID); err != nil {
		return err
	}
	if s.logWriter != nil {
		_ = s.logWriter.LogDelete(ctx, "maze", record.ID)
	}
	return nil
}

// SeedSampleMazes imports the built-in mazes that are not yet in the library.
func (s *MazeServiceImpl) SeedSampleMazes(ctx context.Context) (*primary.SeedResult, error) {
	result := &primary.SeedResult{}
	for _, sample := range geometry.Samples() {
		if _, err := s.mazeRepo.GetByName(ctx, sample.Name); err == nil {
			result.Skipped = append(result.Skipped, sample.Name)
			continue
		}

		parsed, ok := geometry.SampleMaze(sample.Name)
		if !ok {
			return nil, fmt.Errorf("sample maze %s is invalid", sample.Name)
		}
		if _, err := s.store(ctx, parsed); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", sample.Name, err)
		}
		result.Created = append(result.Created, sample.Name)
	}
	return result, nil
}

func (s *MazeServiceImpl) logCreate(ctx context.Context, entityType, id string) {
	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, entityType, id)
	}
}

// Helper functions shared by the services

func isMazeID(ref string) bool {
	return strings.HasPrefix(ref, "MAZE-")
}

// lookupMaze resolves a MAZE-xxx ID or a maze name.
func lookupMaze(ctx context.Context, repo secondary.MazeRepository, ref string) (*secondary.MazeRecord, error) {
	if isMazeID(ref) {
		return repo.GetByID(ctx, ref)
	}
	return repo.GetByName(ctx, ref)
}

// recordToGeometry rebuilds the parsed maze from its stored form.
func recordToGeometry(r *secondary.MazeRecord) (*geometry.Maze, error) {
	grid, err := geometry.ParseGrid(r.Layout)
	if err != nil {
		return nil, fmt.Errorf("stored layout of maze %s is invalid: %w", r.ID, err)
	}
	dirs, err := maze.ParseDirections(r.Directions)
	if err != nil {
		return nil, fmt.Errorf("stored directions of maze %s are invalid: %w", r.ID, err)
	}

	m := &geometry.Maze{
		Name:        r.Name,
		Description: r.Description,
		Grid:        grid,
		Directions:  dirs,
	}
	if r.HasStart {
		m.Start = &maze.Location{Row: r.StartRow, Col: r.StartCol}
	}
	return m, nil
}

func recordToMaze(r *secondary.MazeRecord) (*primary.Maze, error) {
	parsed, err := recordToGeometry(r)
	if err != nil {
		return nil, err
	}

	m := &primary.Maze{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Layout:      r.Layout,
		Rows:        r.Rows,
		Cols:        r.Cols,
		Directions:  parsed.Directions,
		Exits:       len(parsed.Grid.Exits()),
		CreatedAt:   r.CreatedAt,
	}
	if start, err := parsed.ResolveStart(); err == nil {
		m.Start = &start
	}
	return m, nil
}

// Ensure MazeServiceImpl implements the interface
var _ primary.MazeService = (*MazeServiceImpl)(nil)

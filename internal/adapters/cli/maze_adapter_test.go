package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
)

// mockMazeService implements primary.MazeService for testing
type mockMazeService struct {
	importMazeFn func(ctx context.Context, req primary.ImportMazeRequest) (*primary.ImportMazeResponse, error)
	getMazeFn    func(ctx context.Context, ref string) (*primary.Maze, error)
	listMazesFn  func(ctx context.Context) ([]*primary.Maze, error)
	deleteMazeFn func(ctx context.Context, ref string) error
	seedFn       func(ctx context.Context) (*primary.SeedResult, error)

	// Track calls for verification
	lastImportReq primary.ImportMazeRequest
	lastDeleteRef string
}

func (m *mockMazeService) ImportMaze(ctx context.Context, req primary.ImportMazeRequest) (*primary.ImportMazeResponse, error) {
	m.lastImportReq = req
	if m.importMazeFn != nil {
		return m.importMazeFn(ctx, req)
	}
	return &primary.ImportMazeResponse{
		MazeID: "MAZE-001",
		Maze:   &primary.Maze{ID: "MAZE-001", Name: req.Name, Rows: 3, Cols: 3, Exits: 1},
	}, nil
}

func (m *mockMazeService) GetMaze(ctx context.Context, ref string) (*primary.Maze, error) {
	if m.getMazeFn != nil {
		return m.getMazeFn(ctx, ref)
	}
	return &primary.Maze{
		ID:        "MAZE-001",
		Name:      "tiny",
		Layout:    "#E#\n#S \n###",
		Rows:      3,
		Cols:      3,
		Start:     &maze.Location{Row: 1, Col: 1},
		Exits:     1,
		CreatedAt: "2026-01-19",
	}, nil
}

func (m *mockMazeService) ListMazes(ctx context.Context) ([]*primary.Maze, error) {
	if m.listMazesFn != nil {
		return m.listMazesFn(ctx)
	}
	return []*primary.Maze{}, nil
}

func (m *mockMazeService) DeleteMaze(ctx context.Context, ref string) error {
	m.lastDeleteRef = ref
	if m.deleteMazeFn != nil {
		return m.deleteMazeFn(ctx, ref)
	}
	return nil
}

func (m *mockMazeService) SeedSampleMazes(ctx context.Context) (*primary.SeedResult, error) {
	if m.seedFn != nil {
		return m.seedFn(ctx)
	}
	return &primary.SeedResult{}, nil
}

// ============================================================================
// Import Tests
// ============================================================================

func TestMazeAdapter_Import(t *testing.T) {
	mock := &mockMazeService{}
	var out bytes.Buffer
	adapter := NewMazeAdapter(mock, &out)

	resp, err := adapter.Import(context.Background(), "tiny", "small", []byte("#E#\n#  \n###"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.MazeID != "MAZE-001" {
		t.Errorf("MazeID = %s", resp.MazeID)
	}
	if mock.lastImportReq.Name != "tiny" || mock.lastImportReq.Description != "small" {
		t.Errorf("unexpected request %+v", mock.lastImportReq)
	}

	output := out.String()
	if !strings.Contains(output, "✓ Imported maze MAZE-001: tiny") {
		t.Errorf("missing success line, got: %s", output)
	}
	if !strings.Contains(output, "pass --start") {
		t.Errorf("expected a hint about the missing start, got: %s", output)
	}
}

func TestMazeAdapter_Import_Error(t *testing.T) {
	mock := &mockMazeService{
		importMazeFn: func(ctx context.Context, req primary.ImportMazeRequest) (*primary.ImportMazeResponse, error) {
			return nil, errors.New("maze name is required")
		},
	}
	var out bytes.Buffer
	adapter := NewMazeAdapter(mock, &out)

	_, err := adapter.Import(context.Background(), "", "", []byte("#S#"))
	if err == nil || !strings.Contains(err.Error(), "failed to import maze") {
		t.Errorf("expected wrapped error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed on error, got: %s", out.String())
	}
}

// ============================================================================
// List Tests
// ============================================================================

func TestMazeAdapter_List_Empty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewMazeAdapter(&mockMazeService{}, &out)

	if _, err := adapter.List(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "No mazes found.") || !strings.Contains(out.String(), "mazeprobe maze seed") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestMazeAdapter_List_Table(t *testing.T) {
	mock := &mockMazeService{
		listMazesFn: func(ctx context.Context) ([]*primary.Maze, error) {
			return []*primary.Maze{
				{ID: "MAZE-001", Name: "tiny", Rows: 3, Cols: 3, Exits: 1, Start: &maze.Location{Row: 1, Col: 1}},
				{ID: "MAZE-002", Name: "open-field", Rows: 5, Cols: 7, Exits: 2},
			}, nil
		},
	}
	var out bytes.Buffer
	adapter := NewMazeAdapter(mock, &out)

	mazes, err := adapter.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(mazes) != 2 {
		t.Fatalf("expected 2 mazes, got %d", len(mazes))
	}

	output := out.String()
	for _, want := range []string{"ID", "NAME", "MAZE-001", "tiny", "3x3", "(1, 1)", "open-field", "5x7"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

// ============================================================================
// Show / Delete / Seed Tests
// ============================================================================

func TestMazeAdapter_Show(t *testing.T) {
	var out bytes.Buffer
	adapter := NewMazeAdapter(&mockMazeService{}, &out)

	m, err := adapter.Show(context.Background(), "tiny")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.ID != "MAZE-001" {
		t.Errorf("ID = %s", m.ID)
	}

	output := out.String()
	for _, want := range []string{"Maze: MAZE-001", "Size:        3x3", "(derived from the start)", "E"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestMazeAdapter_Delete(t *testing.T) {
	mock := &mockMazeService{}
	var out bytes.Buffer
	adapter := NewMazeAdapter(mock, &out)

	if _, err := adapter.Delete(context.Background(), "tiny"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastDeleteRef != "MAZE-001" {
		t.Errorf("expected delete by resolved ID, got %q", mock.lastDeleteRef)
	}
	if !strings.Contains(out.String(), "✓ Deleted maze MAZE-001: tiny") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestMazeAdapter_Delete_NotFound(t *testing.T) {
	mock := &mockMazeService{
		getMazeFn: func(ctx context.Context, ref string) (*primary.Maze, error) {
			return nil, errors.New("maze not found")
		},
	}
	adapter := NewMazeAdapter(mock, &bytes.Buffer{})

	if _, err := adapter.Delete(context.Background(), "missing"); err == nil {
		t.Error("expected error")
	}
	if mock.lastDeleteRef != "" {
		t.Error("DeleteMaze should not be called for an unknown maze")
	}
}

func TestMazeAdapter_Seed(t *testing.T) {
	mock := &mockMazeService{
		seedFn: func(ctx context.Context) (*primary.SeedResult, error) {
			return &primary.SeedResult{Created: []string{"tiny", "pocket"}, Skipped: []string{"sealed"}}, nil
		},
	}
	var out bytes.Buffer
	adapter := NewMazeAdapter(mock, &out)

	if _, err := adapter.Seed(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "✓ Imported sample tiny") || !strings.Contains(output, "Already present: sealed") {
		t.Errorf("unexpected output: %s", output)
	}
}

// ============================================================================
// RenderLayout Tests
// ============================================================================

func TestRenderLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		start  *maze.Location
		found  *maze.Location
		want   string
	}{
		{
			name:   "plain",
			layout: "#E#\n#S \n###",
			start:  &maze.Location{Row: 1, Col: 1},
			want:   "#E#\n#S \n###",
		},
		{
			name:   "explicit start replaces the marker",
			layout: "#E#\n#S \n###",
			start:  &maze.Location{Row: 1, Col: 2},
			want:   "#E#\n# S\n###",
		},
		{
			name:   "found exit",
			layout: "#E#\n#S \n###",
			start:  &maze.Location{Row: 1, Col: 1},
			found:  &maze.Location{Row: 0, Col: 1},
			want:   "#E#\n#S \n###",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderLayout(tt.layout, tt.start, tt.found); got != tt.want {
				t.Errorf("RenderLayout() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

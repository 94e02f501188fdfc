package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/geometry"
	"github.com/example/mazeprobe/internal/ports/primary"
)

// ============================================================================
// Test Helper
// ============================================================================

func newTestMazeService() (*MazeServiceImpl, *mockMazeRepository, *mockLogWriter) {
	mazeRepo := newMockMazeRepository()
	logWriter := &mockLogWriter{}
	return NewMazeService(mazeRepo, logWriter), mazeRepo, logWriter
}

const manifestYAML = `name: corridor
description: straight corridor
start: {row: 1, col: 1}
directions: [east]
rows:
  - "#####"
  - "#   E"
  - "#####"
`

// ============================================================================
// ImportMaze Tests
// ============================================================================

func TestImportMaze_TextLayout(t *testing.T) {
	service, _, logWriter := newTestMazeService()

	resp, err := service.ImportMaze(context.Background(), primary.ImportMazeRequest{
		Name:        "tiny",
		Description: "three by three",
		Data:        []byte("#E#\n#S \n###\n"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.MazeID != "MAZE-001" {
		t.Errorf("MazeID = %s, want MAZE-001", resp.MazeID)
	}

	m := resp.Maze
	if m.Name != "tiny" || m.Description != "three by three" {
		t.Errorf("unexpected maze %+v", m)
	}
	if m.Rows != 3 || m.Cols != 3 || m.Exits != 1 {
		t.Errorf("unexpected dimensions %+v", m)
	}
	if m.Start == nil || *m.Start != (maze.Location{Row: 1, Col: 1}) {
		t.Errorf("start = %v, want (1, 1) from the S marker", m.Start)
	}
	if m.Directions != nil {
		t.Errorf("text layouts derive directions, got %v", m.Directions)
	}
	if !reflect.DeepEqual(logWriter.entries, []string{"create maze MAZE-001"}) {
		t.Errorf("audit entries = %v", logWriter.entries)
	}
}

func TestImportMaze_Manifest(t *testing.T) {
	service, mazeRepo, _ := newTestMazeService()

	resp, err := service.ImportMaze(context.Background(), primary.ImportMazeRequest{
		Name: "ignored",
		Data: []byte(manifestYAML),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Maze.Name != "corridor" {
		t.Errorf("manifest name should win, got %q", resp.Maze.Name)
	}
	if !reflect.DeepEqual(resp.Maze.Directions, []maze.Direction{maze.East}) {
		t.Errorf("directions = %v", resp.Maze.Directions)
	}

	stored := mazeRepo.mazes[resp.MazeID]
	if !stored.HasStart || stored.StartRow != 1 || stored.StartCol != 1 || stored.Directions != "east" {
		t.Errorf("unexpected stored record %+v", stored)
	}
}

func TestImportMaze_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     primary.ImportMazeRequest
		wantErr string
	}{
		{"invalid layout", primary.ImportMazeRequest{Name: "x", Data: []byte("#?#")}, "failed to parse maze"},
		{"missing name", primary.ImportMazeRequest{Data: []byte("#S#")}, "name is required"},
		{"id-like name", primary.ImportMazeRequest{Name: "MAZE-009", Data: []byte("#S#")}, "looks like a maze ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestMazeService()
			_, err := service.ImportMaze(context.Background(), tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestImportMaze_DuplicateName(t *testing.T) {
	service, _, _ := newTestMazeService()
	ctx := context.Background()

	req := primary.ImportMazeRequest{Name: "tiny", Data: []byte("#E#\n#S#")}
	if _, err := service.ImportMaze(ctx, req); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if _, err := service.ImportMaze(ctx, req); err == nil {
		t.Error("expected error importing a duplicate name")
	}
}

func TestImportMaze_RepositoryError(t *testing.T) {
	service, mazeRepo, logWriter := newTestMazeService()
	mazeRepo.createErr = errors.New("disk full")

	_, err := service.ImportMaze(context.Background(), primary.ImportMazeRequest{Name: "tiny", Data: []byte("#S#")})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(logWriter.entries) != 0 {
		t.Errorf("nothing should be audited on failure, got %v", logWriter.entries)
	}
}

// ============================================================================
// Get / List / Delete Tests
// ============================================================================

func TestGetMaze_ByIDOrName(t *testing.T) {
	service, _, _ := newTestMazeService()
	ctx := context.Background()

	resp, err := service.ImportMaze(ctx, primary.ImportMazeRequest{Name: "tiny", Data: []byte("#E#\n#S#")})
	if err != nil {
		t.Fatalf("ImportMaze failed: %v", err)
	}

	for _, ref := range []string{resp.MazeID, "tiny"} {
		m, err := service.GetMaze(ctx, ref)
		if err != nil {
			t.Fatalf("GetMaze(%q) failed: %v", ref, err)
		}
		if m.ID != resp.MazeID {
			t.Errorf("GetMaze(%q) = %s", ref, m.ID)
		}
	}

	if _, err := service.GetMaze(ctx, "missing"); err == nil {
		t.Error("expected error for unknown maze")
	}
}

func TestListMazes(t *testing.T) {
	service, _, _ := newTestMazeService()
	ctx := context.Background()

	for _, name := range []string{"b", "a"} {
		if _, err := service.ImportMaze(ctx, primary.ImportMazeRequest{Name: name, Data: []byte("#S#")}); err != nil {
			t.Fatalf("ImportMaze failed: %v", err)
		}
	}

	mazes, err := service.ListMazes(ctx)
	if err != nil {
		t.Fatalf("ListMazes failed: %v", err)
	}
	if len(mazes) != 2 || mazes[0].Name != "a" || mazes[1].Name != "b" {
		t.Errorf("unexpected list %v", mazes)
	}
}

func TestListMazes_Error(t *testing.T) {
	service, mazeRepo, _ := newTestMazeService()
	mazeRepo.listErr = errors.New("database locked")

	if _, err := service.ListMazes(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestDeleteMaze(t *testing.T) {
	service, mazeRepo, logWriter := newTestMazeService()
	ctx := context.Background()

	if _, err := service.ImportMaze(ctx, primary.ImportMazeRequest{Name: "tiny", Data: []byte("#S#")}); err != nil {
		t.Fatalf("ImportMaze failed: %v", err)
	}

	if err := service.DeleteMaze(ctx, "tiny"); err != nil {
		t.Fatalf("DeleteMaze failed: %v", err)
	}
	if len(mazeRepo.mazes) != 0 {
		t.Error("maze not deleted")
	}
	if logWriter.entries[len(logWriter.entries)-1] != "delete maze MAZE-001" {
		t.Errorf("audit entries = %v", logWriter.entries)
	}

	if err := service.DeleteMaze(ctx, "tiny"); err == nil {
		t.Error("expected error deleting twice")
	}
}

// ============================================================================
// SeedSampleMazes Tests
// ============================================================================

func TestSeedSampleMazes_Idempotent(t *testing.T) {
	service, mazeRepo, _ := newTestMazeService()
	ctx := context.Background()

	first, err := service.SeedSampleMazes(ctx)
	if err != nil {
		t.Fatalf("SeedSampleMazes failed: %v", err)
	}
	if len(first.Created) != len(geometry.Samples()) || len(first.Skipped) != 0 {
		t.Errorf("first seed = %+v", first)
	}

	second, err := service.SeedSampleMazes(ctx)
	if err != nil {
		t.Fatalf("SeedSampleMazes failed: %v", err)
	}
	if len(second.Created) != 0 || len(second.Skipped) != len(geometry.Samples()) {
		t.Errorf("second seed = %+v", second)
	}
	if len(mazeRepo.mazes) != len(geometry.Samples()) {
		t.Errorf("library has %d mazes", len(mazeRepo.mazes))
	}
}

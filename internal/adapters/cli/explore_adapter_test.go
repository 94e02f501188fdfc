package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/primary"
)

// mockExploreService implements primary.ExploreService for testing.
// It replays a fixed set of observer events before answering.
type mockExploreService struct {
	resp *primary.ExploreResponse
	err  error

	lastReq primary.ExploreRequest
}

func (m *mockExploreService) Explore(ctx context.Context, req primary.ExploreRequest) (*primary.ExploreResponse, error) {
	m.lastReq = req
	if req.Observer != nil {
		req.Observer.ProbeSubmitted(1, maze.Location{Row: 0, Col: 1})
		req.Observer.BatchDrained(1)
		req.Observer.ExitFound(maze.Location{Row: 0, Col: 1})
	}
	return m.resp, m.err
}

func foundResponse() *primary.ExploreResponse {
	return &primary.ExploreResponse{
		RunID:      "RUN-001",
		MazeName:   "tiny",
		Status:     primary.RunStatusFound,
		Start:      maze.Location{Row: 1, Col: 1},
		Directions: []maze.Direction{maze.North, maze.East},
		Exit:       &maze.Location{Row: 0, Col: 1},
		Stats:      primary.ExploreStats{Probes: 3, Results: 3, Batches: 2, LargestBatch: 2, LateResults: 1},
		Duration:   12 * time.Millisecond,
	}
}

func TestExploreAdapter_Found(t *testing.T) {
	mock := &mockExploreService{resp: foundResponse()}
	var out bytes.Buffer
	adapter := NewExploreAdapter(mock, &out)

	resp, err := adapter.Explore(context.Background(), primary.ExploreRequest{Maze: "tiny"}, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.RunID != "RUN-001" {
		t.Errorf("RunID = %s", resp.RunID)
	}
	if mock.lastReq.Observer != nil {
		t.Error("observer should only be attached in verbose mode")
	}

	output := out.String()
	for _, want := range []string{"RUN-001 (tiny)", "heading north,east", "FOUND", "exit at (0, 1)", "3 submitted", "largest 2", "1 results dropped", "12ms"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
	if strings.Contains(output, "probe #") {
		t.Errorf("non-verbose output should not list probes: %s", output)
	}
}

func TestExploreAdapter_Verbose(t *testing.T) {
	mock := &mockExploreService{resp: foundResponse()}
	var out bytes.Buffer
	adapter := NewExploreAdapter(mock, &out)

	if _, err := adapter.Explore(context.Background(), primary.ExploreRequest{Maze: "tiny"}, true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := out.String()
	for _, want := range []string{"probe #1 → (0, 1)", "batch of 1", "exit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestExploreAdapter_Statuses(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{primary.RunStatusNoExit, "NO EXIT"},
		{primary.RunStatusTimeout, "TIMEOUT"},
		{primary.RunStatusCancelled, "CANCELLED"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			resp := foundResponse()
			resp.Status = tt.status
			resp.Exit = nil
			var out bytes.Buffer
			adapter := NewExploreAdapter(&mockExploreService{resp: resp}, &out)

			if _, err := adapter.Explore(context.Background(), primary.ExploreRequest{}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected %q in output, got: %s", tt.want, out.String())
			}
		})
	}
}

func TestExploreAdapter_FailedRun(t *testing.T) {
	resp := foundResponse()
	resp.Status = primary.RunStatusFailed
	resp.Exit = nil
	resp.Error = "probe submitted for a wall"
	violation := &maze.ContractViolationError{Location: maze.Location{Row: 1, Col: 2}, Cause: maze.ErrWallSubmitted}

	var out bytes.Buffer
	adapter := NewExploreAdapter(&mockExploreService{resp: resp, err: violation}, &out)

	got, err := adapter.Explore(context.Background(), primary.ExploreRequest{}, false)
	if !errors.Is(err, maze.ErrContractViolation) {
		t.Fatalf("expected contract violation, got %v", err)
	}
	if got == nil {
		t.Fatal("the failed run should still be returned")
	}
	if !strings.Contains(out.String(), "FAILED probe submitted for a wall") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestExploreAdapter_Rejected(t *testing.T) {
	var out bytes.Buffer
	adapter := NewExploreAdapter(&mockExploreService{err: errors.New("maze not found")}, &out)

	_, err := adapter.Explore(context.Background(), primary.ExploreRequest{Maze: "missing"}, false)
	if err == nil || !strings.Contains(err.Error(), "failed to explore") {
		t.Errorf("expected wrapped error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got: %s", out.String())
	}
}

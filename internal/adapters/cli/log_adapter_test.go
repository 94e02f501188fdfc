package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/mazeprobe/internal/ports/primary"
)

// mockLogService implements primary.LogService for testing
type mockLogService struct {
	entries     []*primary.LogEntry
	pruned      int
	err         error
	lastFilters primary.LogFilters
	lastDays    int
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}

func (m *mockLogService) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	m.lastDays = olderThanDays
	return m.pruned, m.err
}

func TestLogAdapter_List(t *testing.T) {
	mock := &mockLogService{entries: []*primary.LogEntry{
		{ID: "LOG-002", EntityType: "run", EntityID: "RUN-001", Action: "create", CreatedAt: "2026-01-20T10:00:00Z"},
		{ID: "LOG-001", EntityType: "maze", EntityID: "MAZE-001", Action: "create", Actor: "alice", CreatedAt: "2026-01-19T09:30:00Z"},
	}}
	var out bytes.Buffer
	adapter := NewLogAdapter(mock, &out)

	if _, err := adapter.List(context.Background(), primary.LogFilters{Limit: 20}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastFilters.Limit != 20 {
		t.Errorf("filters = %+v", mock.lastFilters)
	}

	output := out.String()
	for _, want := range []string{"Found 2 log entries", "2026-01-19 09:30:00 | alice", "+ create | maze/MAZE-001", "| -            | + create | run/RUN-001"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
	if strings.Index(output, "MAZE-001") > strings.Index(output, "RUN-001") {
		t.Errorf("entries should print oldest first, got: %s", output)
	}
}

func TestLogAdapter_List_Empty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewLogAdapter(&mockLogService{}, &out)

	if _, err := adapter.List(context.Background(), primary.LogFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "No log entries found.") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestLogAdapter_Prune(t *testing.T) {
	tests := []struct {
		name   string
		pruned int
		want   string
	}{
		{"some", 4, "Pruned 4 log entries older than 30 days."},
		{"none", 0, "No log entries older than 30 days found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLogService{pruned: tt.pruned}
			var out bytes.Buffer
			adapter := NewLogAdapter(mock, &out)

			n, err := adapter.Prune(context.Background(), 30)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if n != tt.pruned || mock.lastDays != 30 {
				t.Errorf("pruned %d for %d days", n, mock.lastDays)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("unexpected output: %s", out.String())
			}
		})
	}
}

func TestLogAdapter_Prune_Error(t *testing.T) {
	adapter := NewLogAdapter(&mockLogService{err: errors.New("days must be at least 1")}, &bytes.Buffer{})

	if _, err := adapter.Prune(context.Background(), 0); err == nil {
		t.Error("expected error")
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp("2026-01-19T09:30:00Z"); got != "2026-01-19 09:30:00" {
		t.Errorf("formatTimestamp(RFC3339) = %q", got)
	}
	if got := formatTimestamp("2026-01-19 09:30:00"); got != "2026-01-19 09:30:00" {
		t.Errorf("non-RFC3339 timestamps pass through, got %q", got)
	}
}

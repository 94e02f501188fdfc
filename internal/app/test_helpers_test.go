package app

import (
	"context"
	"errors"
	"sort"

	"github.com/example/mazeprobe/internal/core/maze"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// ============================================================================
// Shared Mock Implementations
// ============================================================================

// Ensure the mocks implement the interfaces
var (
	_ secondary.MazeRepository     = (*mockMazeRepository)(nil)
	_ secondary.RunRepository      = (*mockRunRepository)(nil)
	_ secondary.AuditLogRepository = (*mockAuditLogRepository)(nil)
	_ secondary.LogWriter          = (*mockLogWriter)(nil)
)

// mockMazeRepository implements secondary.MazeRepository for testing.
type mockMazeRepository struct {
	mazes     map[string]*secondary.MazeRecord
	lastID    int
	createErr error
	listErr   error
}

func newMockMazeRepository() *mockMazeRepository {
	return &mockMazeRepository{mazes: make(map[string]*secondary.MazeRecord)}
}

func (m *mockMazeRepository) Create(ctx context.Context, record *secondary.MazeRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.CreatedAt = "2026-01-01T00:00:00Z"
	m.mazes[record.ID] = record
	return nil
}

func (m *mockMazeRepository) GetByID(ctx context.Context, id string) (*secondary.MazeRecord, error) {
	if r, ok := m.mazes[id]; ok {
		return r, nil
	}
	return nil, errors.New("maze not found")
}

func (m *mockMazeRepository) GetByName(ctx context.Context, name string) (*secondary.MazeRecord, error) {
	for _, r := range m.mazes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, errors.New("maze not found")
}

func (m *mockMazeRepository) List(ctx context.Context) ([]*secondary.MazeRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.MazeRecord
	for _, r := range m.mazes {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockMazeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.mazes[id]; !ok {
		return errors.New("maze not found")
	}
	delete(m.mazes, id)
	return nil
}

func (m *mockMazeRepository) GetNextID(ctx context.Context) (string, error) {
	m.lastID++
	return maze.GenerateMazeID(m.lastID - 1), nil
}

// mockRunRepository implements secondary.RunRepository for testing.
type mockRunRepository struct {
	runs      []*secondary.RunRecord
	createErr error
	filters   secondary.RunFilters
}

func newMockRunRepository() *mockRunRepository {
	return &mockRunRepository{}
}

func (m *mockRunRepository) Create(ctx context.Context, run *secondary.RunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunRepository) GetByID(ctx context.Context, id string) (*secondary.RunRecord, error) {
	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("run not found")
}

func (m *mockRunRepository) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	m.filters = filters
	var result []*secondary.RunRecord
	for i := len(m.runs) - 1; i >= 0; i-- {
		r := m.runs[i]
		if filters.MazeID != "" && r.MazeID != filters.MazeID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockRunRepository) GetNextID(ctx context.Context) (string, error) {
	return maze.GenerateRunID(len(m.runs)), nil
}

// mockAuditLogRepository implements secondary.AuditLogRepository for testing.
type mockAuditLogRepository struct {
	entries    []*secondary.AuditLogRecord
	prunedDays int
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	var result []*secondary.AuditLogRecord
	for _, e := range m.entries {
		if filters.EntityType != "" && e.EntityType != filters.EntityType {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockAuditLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	m.prunedDays = days
	return 2, nil
}

func (m *mockAuditLogRepository) GetNextID(ctx context.Context) (string, error) {
	return "LOG-001", nil
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []string // "action entityType entityID"
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, "create "+entityType+" "+entityID)
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, "delete "+entityType+" "+entityID)
	return nil
}

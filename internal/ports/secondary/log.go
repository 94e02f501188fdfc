package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}

// AuditLogRepository defines the secondary port for audit log persistence.
type AuditLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, entry *AuditLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// PruneOlderThan deletes entries older than days and returns how many went.
	PruneOlderThan(ctx context.Context, days int) (int, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)
}

// AuditLogRecord represents one audit log entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	EntityType string // maze, run
	EntityID   string
	Action     string // create, delete
	Actor      string
	CreatedAt  string
}

// AuditLogFilters contains filter options for querying the audit log.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	Limit      int
}

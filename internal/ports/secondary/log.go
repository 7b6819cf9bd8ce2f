package secondary

import "context"

// EventWriter defines the interface for writing a sitting's audit trail.
// Implementations extract the actor from context.
type EventWriter interface {
	// LogEvent records that action was applied to subject (the sitting itself,
	// an agenda item, or a legislator) within sittingID.
	LogEvent(ctx context.Context, sittingID, action, subject, detail string) error
}

// EventRepository defines the secondary port for sitting event persistence.
// Events are immutable - no Update operations.
type EventRepository interface {
	// Create persists a new event.
	Create(ctx context.Context, event *EventRecord) error

	// ListBySitting retrieves a sitting's events, oldest first.
	ListBySitting(ctx context.Context, sittingID string, limit int) ([]*EventRecord, error)

	// GetNextID returns the next available event ID.
	GetNextID(ctx context.Context) (string, error)
}

// EventRecord represents a sitting event as stored in persistence.
type EventRecord struct {
	ID        string
	SittingID string
	ActorID   string // Empty string means null
	Action    string
	Subject   string
	Detail    string // Empty string means null
	CreatedAt string
}

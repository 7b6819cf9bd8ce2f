package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	coresitting "github.com/example/plenario/internal/core/sitting"
	"github.com/example/plenario/internal/ports/secondary"
)

// EventRepository implements secondary.EventRepository with SQLite.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite sitting event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a new event.
func (r *EventRepository) Create(ctx context.Context, event *secondary.EventRecord) error {
	if event.ID == "" {
		return fmt.Errorf("event ID must be pre-populated")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sitting_events (id, sitting_id, actor_id, action, subject, detail) VALUES (?, ?, ?, ?, ?, ?)",
		event.ID, event.SittingID, nullString(event.ActorID), event.Action, event.Subject, nullString(event.Detail),
	)
	if err != nil {
		return fmt.Errorf("failed to create sitting event: %w", err)
	}

	return nil
}

// ListBySitting retrieves a sitting's events, oldest first.
func (r *EventRepository) ListBySitting(ctx context.Context, sittingID string, limit int) ([]*secondary.EventRecord, error) {
	query := "SELECT id, sitting_id, actor_id, action, subject, detail, created_at FROM sitting_events WHERE sitting_id = ? ORDER BY id"
	args := []any{sittingID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitting events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.EventRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			detail    sql.NullString
			createdAt sql.NullTime
		)
		record := &secondary.EventRecord{}
		if err := rows.Scan(&record.ID, &record.SittingID, &actorID, &record.Action, &record.Subject, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan sitting event: %w", err)
		}
		record.ActorID = actorID.String
		record.Detail = detail.String
		record.CreatedAt = formatTime(createdAt)
		events = append(events, record)
	}

	return events, rows.Err()
}

// GetNextID returns the next available event ID.
// EVT-XXXX format where XXXX starts at position 5.
func (r *EventRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM sitting_events",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next event ID: %w", err)
	}

	return coresitting.GenerateEventID(maxID), nil
}

var _ secondary.EventRepository = (*EventRepository)(nil)

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/plenario/internal/core/fault"
	coreroster "github.com/example/plenario/internal/core/roster"
	"github.com/example/plenario/internal/ports/secondary"
)

// PeriodRepository implements secondary.PeriodRepository with SQLite.
type PeriodRepository struct {
	db *sql.DB
}

// NewPeriodRepository creates a new SQLite period repository.
func NewPeriodRepository(db *sql.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// Create persists a new period.
func (r *PeriodRepository) Create(ctx context.Context, period *secondary.PeriodRecord) error {
	if period.ID == "" {
		return fmt.Errorf("period ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO periods (id, name, starts_on, ends_on) VALUES (?, ?, ?, ?)",
		period.ID, period.Name, period.StartsOn, period.EndsOn,
	)
	if err != nil {
		return fmt.Errorf("failed to create period: %w", err)
	}

	return nil
}

// GetByID retrieves a period by its ID.
func (r *PeriodRepository) GetByID(ctx context.Context, id string) (*secondary.PeriodRecord, error) {
	var createdAt sql.NullTime
	record := &secondary.PeriodRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, starts_on, ends_on, created_at FROM periods WHERE id = ?", id,
	).Scan(&record.ID, &record.Name, &record.StartsOn, &record.EndsOn, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("period %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// List retrieves every period, most recent first.
func (r *PeriodRepository) List(ctx context.Context) ([]*secondary.PeriodRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, starts_on, ends_on, created_at FROM periods ORDER BY starts_on DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []*secondary.PeriodRecord
	for rows.Next() {
		var createdAt sql.NullTime
		record := &secondary.PeriodRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.StartsOn, &record.EndsOn, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		record.CreatedAt = formatTime(createdAt)
		periods = append(periods, record)
	}

	return periods, rows.Err()
}

// GetNextID returns the next available period ID.
// PER-XXX format where XXX starts at position 5.
func (r *PeriodRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM periods",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next period ID: %w", err)
	}

	return coreroster.GeneratePeriodID(maxID), nil
}

// NextScheduledSitting returns the earliest scheduled sitting of periodID after the
// given instant, or nil when there is none.
func (r *PeriodRepository) NextScheduledSitting(ctx context.Context, periodID, after string) (*secondary.SittingRecord, error) {
	at := nullTime(after)
	if !at.Valid {
		return nil, fmt.Errorf("invalid instant %q", after)
	}

	row := r.db.QueryRowContext(ctx,
		"SELECT "+sittingColumns+" FROM sittings WHERE period_id = ? AND status = 'scheduled' AND scheduled_at > ? ORDER BY scheduled_at ASC, id ASC LIMIT 1",
		periodID, at.Time,
	)
	record, err := scanSitting(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find next sitting: %w", err)
	}
	return record, nil
}

var _ secondary.PeriodRepository = (*PeriodRepository)(nil)

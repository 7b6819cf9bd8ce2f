// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/plenario/internal/core/fault"
	coresitting "github.com/example/plenario/internal/core/sitting"
	"github.com/example/plenario/internal/ports/secondary"
)

// SittingRepository implements secondary.SittingRepository with SQLite.
type SittingRepository struct {
	db *sql.DB
}

// NewSittingRepository creates a new SQLite sitting repository.
func NewSittingRepository(db *sql.DB) *SittingRepository {
	return &SittingRepository{db: db}
}

const sittingColumns = "id, period_id, kind, scheduled_at, location, notes, status, agenda_published, status_reason, started_at, closed_at, minutes_ref, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSitting(row rowScanner) (*secondary.SittingRecord, error) {
	var (
		location     sql.NullString
		notes        sql.NullString
		statusReason sql.NullString
		minutesRef   sql.NullString
		scheduledAt  time.Time
		startedAt    sql.NullTime
		closedAt     sql.NullTime
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
	)

	record := &secondary.SittingRecord{}
	err := row.Scan(&record.ID, &record.PeriodID, &record.Kind, &scheduledAt, &location, &notes, &record.Status,
		&record.AgendaPublished, &statusReason, &startedAt, &closedAt, &minutesRef, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.ScheduledAt = scheduledAt.UTC().Format(time.RFC3339)
	record.Location = location.String
	record.Notes = notes.String
	record.StatusReason = statusReason.String
	record.MinutesRef = minutesRef.String
	record.StartedAt = formatTime(startedAt)
	record.ClosedAt = formatTime(closedAt)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new sitting.
// The record must have ID and Status pre-populated by the service layer.
func (r *SittingRepository) Create(ctx context.Context, sitting *secondary.SittingRecord) error {
	if sitting.ID == "" {
		return fmt.Errorf("sitting ID must be pre-populated by service layer")
	}
	if sitting.Status == "" {
		return fmt.Errorf("sitting Status must be pre-populated by service layer")
	}
	scheduledAt := nullTime(sitting.ScheduledAt)
	if !scheduledAt.Valid {
		return fmt.Errorf("sitting ScheduledAt must be an RFC3339 timestamp, got %q", sitting.ScheduledAt)
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sittings (id, period_id, kind, scheduled_at, location, notes, status) VALUES (?, ?, ?, ?, ?, ?, ?)",
		sitting.ID, sitting.PeriodID, sitting.Kind, scheduledAt.Time, nullString(sitting.Location), nullString(sitting.Notes), sitting.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create sitting: %w", err)
	}

	return nil
}

// GetByID retrieves a sitting by its ID.
func (r *SittingRepository) GetByID(ctx context.Context, id string) (*secondary.SittingRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+sittingColumns+" FROM sittings WHERE id = ?", id)
	record, err := scanSitting(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("sitting %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sitting: %w", err)
	}
	return record, nil
}

// List retrieves sittings matching the given filters, oldest first.
func (r *SittingRepository) List(ctx context.Context, filters secondary.SittingFilters) ([]*secondary.SittingRecord, error) {
	query := "SELECT " + sittingColumns + " FROM sittings WHERE 1=1"
	args := []any{}

	if filters.PeriodID != "" {
		query += " AND period_id = ?"
		args = append(args, filters.PeriodID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY scheduled_at ASC, id ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sittings: %w", err)
	}
	defer rows.Close()

	var sittings []*secondary.SittingRecord
	for rows.Next() {
		record, err := scanSitting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sitting: %w", err)
		}
		sittings = append(sittings, record)
	}

	return sittings, rows.Err()
}

// Delete removes a sitting. Agenda items, attendance and events cascade.
func (r *SittingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sittings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete sitting: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("sitting %s not found", id)
	}

	return nil
}

// GetNextID returns the next available sitting ID.
// SES-XXX format where XXX starts at position 5.
func (r *SittingRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM sittings",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next sitting ID: %w", err)
	}

	return coresitting.GenerateSittingID(maxID), nil
}

// UpdateStatus writes a lifecycle transition. Timestamps are only written
// when the update carries them.
func (r *SittingRepository) UpdateStatus(ctx context.Context, id string, update secondary.SittingStatusUpdate) error {
	query := "UPDATE sittings SET status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{update.Status}

	if update.StatusReason != "" {
		query += ", status_reason = ?"
		args = append(args, update.StatusReason)
	}
	if t := nullTime(update.StartedAt); t.Valid {
		query += ", started_at = ?"
		args = append(args, t)
	}
	if t := nullTime(update.ClosedAt); t.Valid {
		query += ", closed_at = ?"
		args = append(args, t)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sitting status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("sitting %s not found", id)
	}

	return nil
}

// SetAgendaPublished flips the published flag of a sitting's agenda.
func (r *SittingRepository) SetAgendaPublished(ctx context.Context, id string, published bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sittings SET agenda_published = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		published, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set agenda published: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("sitting %s not found", id)
	}

	return nil
}

// SetMinutesRef stores the reference of the sitting's minutes.
func (r *SittingRepository) SetMinutesRef(ctx context.Context, id, ref string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sittings SET minutes_ref = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		ref, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set minutes ref: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("sitting %s not found", id)
	}

	return nil
}

var _ secondary.SittingRepository = (*SittingRepository)(nil)

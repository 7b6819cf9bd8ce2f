package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/plenario/internal/ports/secondary"
)

// AttendanceRepository implements secondary.AttendanceRepository with SQLite.
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new SQLite attendance repository.
func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert stores a legislator's attendance, replacing any earlier mark.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *secondary.AttendanceRecord) error {
	markedAt := nullTime(record.MarkedAt)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance (sitting_id, legislator_id, status, justification, marked_at)
		 VALUES (?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
		 ON CONFLICT(sitting_id, legislator_id) DO UPDATE SET
		   status = excluded.status,
		   justification = excluded.justification,
		   marked_at = excluded.marked_at`,
		record.SittingID, record.LegislatorID, record.Status, nullString(record.Justification), markedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record attendance: %w", err)
	}

	return nil
}

// ListBySitting retrieves the explicit marks of a sitting ordered by legislator.
func (r *AttendanceRepository) ListBySitting(ctx context.Context, sittingID string) ([]*secondary.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT sitting_id, legislator_id, status, justification, marked_at FROM attendance WHERE sitting_id = ? ORDER BY legislator_id",
		sittingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AttendanceRecord
	for rows.Next() {
		var (
			justification sql.NullString
			markedAt      sql.NullTime
		)
		record := &secondary.AttendanceRecord{}
		if err := rows.Scan(&record.SittingID, &record.LegislatorID, &record.Status, &justification, &markedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		record.Justification = justification.String
		record.MarkedAt = formatTime(markedAt)
		records = append(records, record)
	}

	return records, rows.Err()
}

// Seed inserts an absent mark for every legislator that has none yet.
// Existing marks are left untouched, so seeding on resume is harmless.
func (r *AttendanceRepository) Seed(ctx context.Context, sittingID string, legislatorIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin attendance seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO attendance (sitting_id, legislator_id, status) VALUES (?, ?, 'absent')",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare attendance seed: %w", err)
	}
	defer stmt.Close()

	for _, id := range legislatorIDs {
		if _, err := stmt.ExecContext(ctx, sittingID, id); err != nil {
			return fmt.Errorf("failed to seed attendance for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendance seed: %w", err)
	}
	return nil
}

// CountPresent returns the number of legislators marked present.
func (r *AttendanceRepository) CountPresent(ctx context.Context, sittingID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE sitting_id = ? AND status = 'present'",
		sittingID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count present legislators: %w", err)
	}

	return count, nil
}

var _ secondary.AttendanceRepository = (*AttendanceRepository)(nil)

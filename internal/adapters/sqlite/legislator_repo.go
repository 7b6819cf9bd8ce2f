package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/plenario/internal/core/fault"
	coreroster "github.com/example/plenario/internal/core/roster"
	"github.com/example/plenario/internal/ports/secondary"
)

// LegislatorRepository implements secondary.LegislatorRepository with SQLite.
// It also serves as the conduction core's LegislatorRoster.
type LegislatorRepository struct {
	db *sql.DB
}

// NewLegislatorRepository creates a new SQLite legislator repository.
func NewLegislatorRepository(db *sql.DB) *LegislatorRepository {
	return &LegislatorRepository{db: db}
}

// Create persists a new legislator.
func (r *LegislatorRepository) Create(ctx context.Context, legislator *secondary.LegislatorRecord) error {
	if legislator.ID == "" {
		return fmt.Errorf("legislator ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO legislators (id, name, party) VALUES (?, ?, ?)",
		legislator.ID, legislator.Name, nullString(legislator.Party),
	)
	if err != nil {
		return fmt.Errorf("failed to create legislator: %w", err)
	}

	return nil
}

// GetByID retrieves a legislator by its ID.
func (r *LegislatorRepository) GetByID(ctx context.Context, id string) (*secondary.LegislatorRecord, error) {
	var (
		party     sql.NullString
		createdAt sql.NullTime
	)
	record := &secondary.LegislatorRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, party, created_at FROM legislators WHERE id = ?", id,
	).Scan(&record.ID, &record.Name, &party, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("legislator %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get legislator: %w", err)
	}
	record.Party = party.String
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// List retrieves every legislator ordered by ID.
func (r *LegislatorRepository) List(ctx context.Context) ([]*secondary.LegislatorRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, party, created_at FROM legislators ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list legislators: %w", err)
	}
	defer rows.Close()

	var legislators []*secondary.LegislatorRecord
	for rows.Next() {
		var (
			party     sql.NullString
			createdAt sql.NullTime
		)
		record := &secondary.LegislatorRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &party, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan legislator: %w", err)
		}
		record.Party = party.String
		record.CreatedAt = formatTime(createdAt)
		legislators = append(legislators, record)
	}

	return legislators, rows.Err()
}

// GetNextID returns the next available legislator ID.
// LEG-XXX format where XXX starts at position 5.
func (r *LegislatorRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM legislators",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next legislator ID: %w", err)
	}

	return coreroster.GenerateLegislatorID(maxID), nil
}

// SetMembership adds, reactivates or deactivates a legislator in a period.
func (r *LegislatorRepository) SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO period_members (period_id, legislator_id, active) VALUES (?, ?, ?)
		 ON CONFLICT(period_id, legislator_id) DO UPDATE SET active = excluded.active`,
		periodID, legislatorID, active,
	)
	if err != nil {
		return fmt.Errorf("failed to set membership: %w", err)
	}

	return nil
}

// EligibleForPeriod returns the active legislators of a period ordered by ID.
func (r *LegislatorRepository) EligibleForPeriod(ctx context.Context, periodID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT legislator_id FROM period_members WHERE period_id = ? AND active = 1 ORDER BY legislator_id",
		periodID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

var _ secondary.LegislatorRepository = (*LegislatorRepository)(nil)

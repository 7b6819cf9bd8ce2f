package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	coreagenda "github.com/example/plenario/internal/core/agenda"
	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/ports/secondary"
)

// AgendaRepository implements secondary.AgendaRepository with SQLite.
type AgendaRepository struct {
	db *sql.DB
}

// NewAgendaRepository creates a new SQLite agenda repository.
func NewAgendaRepository(db *sql.DB) *AgendaRepository {
	return &AgendaRepository{db: db}
}

const agendaItemColumns = "id, sitting_id, matter_id, section, position, status, yes_count, no_count, abstain_count, outcome, voted_at, created_at, updated_at"

// sectionOrder sorts sections in conduction order inside SQL.
const sectionOrder = "CASE section WHEN 'expediente' THEN 0 WHEN 'ordem_do_dia' THEN 1 ELSE 2 END"

func scanAgendaItem(row rowScanner) (*secondary.AgendaItemRecord, error) {
	var (
		outcome   sql.NullString
		votedAt   sql.NullTime
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	record := &secondary.AgendaItemRecord{}
	err := row.Scan(&record.ID, &record.SittingID, &record.MatterID, &record.Section, &record.Position, &record.Status,
		&record.Yes, &record.No, &record.Abstain, &outcome, &votedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Outcome = outcome.String
	record.VotedAt = formatTime(votedAt)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new agenda item.
// The record must have ID, Position and Status pre-populated by the service layer.
func (r *AgendaRepository) Create(ctx context.Context, item *secondary.AgendaItemRecord) error {
	if item.ID == "" {
		return fmt.Errorf("agenda item ID must be pre-populated by service layer")
	}
	if item.Status == "" {
		return fmt.Errorf("agenda item Status must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO agenda_items (id, sitting_id, matter_id, section, position, status) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.SittingID, item.MatterID, item.Section, item.Position, item.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create agenda item: %w", err)
	}

	return nil
}

// GetByID retrieves an agenda item by its ID.
func (r *AgendaRepository) GetByID(ctx context.Context, id string) (*secondary.AgendaItemRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+agendaItemColumns+" FROM agenda_items WHERE id = ?", id)
	record, err := scanAgendaItem(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("agenda item %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda item: %w", err)
	}
	return record, nil
}

// ListBySitting retrieves a sitting's items ordered by section then position.
func (r *AgendaRepository) ListBySitting(ctx context.Context, sittingID string) ([]*secondary.AgendaItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+agendaItemColumns+" FROM agenda_items WHERE sitting_id = ? ORDER BY "+sectionOrder+", position",
		sittingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.AgendaItemRecord
	for rows.Next() {
		record, err := scanAgendaItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agenda item: %w", err)
		}
		items = append(items, record)
	}

	return items, rows.Err()
}

// Delete removes an agenda item.
func (r *AgendaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM agenda_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete agenda item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("agenda item %s not found", id)
	}

	return nil
}

// GetNextID returns the next available agenda item ID.
// ITEM-XXX format where XXX starts at position 6.
func (r *AgendaRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM agenda_items",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next agenda item ID: %w", err)
	}

	return coreagenda.GenerateItemID(maxID), nil
}

// SetPositions moves orderedIDs into section at positions 1..n in one
// transaction. Positions are first parked at negative values so the
// (sitting, section, position) uniqueness holds at every statement.
func (r *AgendaRepository) SetPositions(ctx context.Context, sittingID, section string, orderedIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	for i, id := range orderedIDs {
		result, err := tx.ExecContext(ctx,
			"UPDATE agenda_items SET position = ? WHERE id = ? AND sitting_id = ?",
			-(i + 1), id, sittingID,
		)
		if err != nil {
			return fmt.Errorf("failed to park agenda item %s: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fault.NotFoundf("agenda item %s not found in sitting %s", id, sittingID)
		}
	}

	for i, id := range orderedIDs {
		_, err := tx.ExecContext(ctx,
			"UPDATE agenda_items SET section = ?, position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			section, i+1, id,
		)
		if err != nil {
			return fmt.Errorf("failed to position agenda item %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// UpdateStatus sets an item's conduction status.
func (r *AgendaRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE agenda_items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update agenda item status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("agenda item %s not found", id)
	}

	return nil
}

// RecordResult freezes a closed tally on the item and marks it voted.
func (r *AgendaRepository) RecordResult(ctx context.Context, id string, result secondary.VoteResultRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE agenda_items
		 SET status = 'voted', yes_count = ?, no_count = ?, abstain_count = ?, outcome = ?, voted_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'voting_in_progress'`,
		result.Yes, result.No, result.Abstain, result.Outcome, nullTime(result.VotedAt), id,
	)
	if err != nil {
		return fmt.Errorf("failed to record vote result: %w", err)
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fault.New(fault.NotVoting, "agenda item %s is not open for voting", id)
	}

	return nil
}

// ActiveSittingsByMatter maps matters on the agenda of scheduled or
// in-progress sittings other than excludeSittingID to that sitting.
func (r *AgendaRepository) ActiveSittingsByMatter(ctx context.Context, excludeSittingID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ai.matter_id, ai.sitting_id
		 FROM agenda_items ai
		 JOIN sittings s ON s.id = ai.sitting_id
		 WHERE s.status IN ('scheduled', 'in_progress') AND ai.sitting_id != ?`,
		excludeSittingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled matters: %w", err)
	}
	defer rows.Close()

	active := make(map[string]string)
	for rows.Next() {
		var matterID, sittingID string
		if err := rows.Scan(&matterID, &sittingID); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled matter: %w", err)
		}
		active[matterID] = sittingID
	}

	return active, rows.Err()
}

var _ secondary.AgendaRepository = (*AgendaRepository)(nil)

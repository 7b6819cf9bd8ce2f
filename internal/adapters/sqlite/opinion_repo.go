package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/plenario/internal/core/fault"
	coreopinion "github.com/example/plenario/internal/core/opinion"
	"github.com/example/plenario/internal/ports/secondary"
)

// OpinionRepository implements secondary.OpinionRepository with SQLite.
type OpinionRepository struct {
	db *sql.DB
}

// NewOpinionRepository creates a new SQLite committee opinion repository.
func NewOpinionRepository(db *sql.DB) *OpinionRepository {
	return &OpinionRepository{db: db}
}

func scanOpinion(row rowScanner) (*secondary.OpinionRecord, error) {
	var createdAt, updatedAt sql.NullTime
	record := &secondary.OpinionRecord{}
	if err := row.Scan(&record.ID, &record.MatterID, &record.Committee, &record.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new opinion.
func (r *OpinionRepository) Create(ctx context.Context, opinion *secondary.OpinionRecord) error {
	if opinion.ID == "" {
		return fmt.Errorf("opinion ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO committee_opinions (id, matter_id, committee, status) VALUES (?, ?, ?, ?)",
		opinion.ID, opinion.MatterID, opinion.Committee, opinion.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create opinion: %w", err)
	}

	return nil
}

// GetByID retrieves an opinion by its ID.
func (r *OpinionRepository) GetByID(ctx context.Context, id string) (*secondary.OpinionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, matter_id, committee, status, created_at, updated_at FROM committee_opinions WHERE id = ?", id)
	record, err := scanOpinion(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("opinion %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opinion: %w", err)
	}
	return record, nil
}

// ListByMatter retrieves every opinion linked to a matter.
func (r *OpinionRepository) ListByMatter(ctx context.Context, matterID string) ([]*secondary.OpinionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, matter_id, committee, status, created_at, updated_at FROM committee_opinions WHERE matter_id = ? ORDER BY id",
		matterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list opinions: %w", err)
	}
	defer rows.Close()

	var opinions []*secondary.OpinionRecord
	for rows.Next() {
		record, err := scanOpinion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opinion: %w", err)
		}
		opinions = append(opinions, record)
	}

	return opinions, rows.Err()
}

// UpdateStatus sets an opinion's status.
func (r *OpinionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE committee_opinions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update opinion status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("opinion %s not found", id)
	}

	return nil
}

// GetNextID returns the next available opinion ID.
// OP-XXX format where XXX starts at position 4.
func (r *OpinionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM committee_opinions",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next opinion ID: %w", err)
	}

	return coreopinion.GenerateOpinionID(maxID), nil
}

var _ secondary.OpinionRepository = (*OpinionRepository)(nil)

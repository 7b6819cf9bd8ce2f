package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/plenario/internal/core/fault"
	corematter "github.com/example/plenario/internal/core/matter"
	"github.com/example/plenario/internal/ports/secondary"
)

// MatterRepository implements secondary.MatterRepository with SQLite.
type MatterRepository struct {
	db *sql.DB
}

// NewMatterRepository creates a new SQLite matter repository.
func NewMatterRepository(db *sql.DB) *MatterRepository {
	return &MatterRepository{db: db}
}

const matterColumns = "id, kind, title, status, requires_vote, requires_opinion, created_at, updated_at"

func scanMatter(row rowScanner) (*secondary.MatterRecord, error) {
	var createdAt, updatedAt sql.NullTime
	record := &secondary.MatterRecord{}
	err := row.Scan(&record.ID, &record.Kind, &record.Title, &record.Status,
		&record.RequiresVote, &record.RequiresOpinion, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new matter.
func (r *MatterRepository) Create(ctx context.Context, matter *secondary.MatterRecord) error {
	if matter.ID == "" {
		return fmt.Errorf("matter ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO matters (id, kind, title, status, requires_vote, requires_opinion) VALUES (?, ?, ?, ?, ?, ?)",
		matter.ID, matter.Kind, matter.Title, matter.Status, matter.RequiresVote, matter.RequiresOpinion,
	)
	if err != nil {
		return fmt.Errorf("failed to create matter: %w", err)
	}

	return nil
}

// GetByID retrieves a matter by its ID.
func (r *MatterRepository) GetByID(ctx context.Context, id string) (*secondary.MatterRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+matterColumns+" FROM matters WHERE id = ?", id)
	record, err := scanMatter(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFoundf("matter %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get matter: %w", err)
	}
	return record, nil
}

// List retrieves matters matching the given filters ordered by ID.
func (r *MatterRepository) List(ctx context.Context, filters secondary.MatterFilters) ([]*secondary.MatterRecord, error) {
	query := "SELECT " + matterColumns + " FROM matters WHERE 1=1"
	args := []any{}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}
	if len(filters.Statuses) > 0 {
		query += " AND status IN (?" + strings.Repeat(", ?", len(filters.Statuses)-1) + ")"
		for _, s := range filters.Statuses {
			args = append(args, s)
		}
	}

	query += " ORDER BY id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}
	defer rows.Close()

	var matters []*secondary.MatterRecord
	for rows.Next() {
		record, err := scanMatter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matter: %w", err)
		}
		matters = append(matters, record)
	}

	return matters, rows.Err()
}

// UpdateStatus sets a matter's status.
func (r *MatterRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE matters SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update matter status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("matter %s not found", id)
	}

	return nil
}

// Delete removes a matter.
func (r *MatterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM matters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete matter: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFoundf("matter %s not found", id)
	}

	return nil
}

// GetNextID returns the next available matter ID.
// MAT-XXX format where XXX starts at position 5.
func (r *MatterRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM matters",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next matter ID: %w", err)
	}

	return corematter.GenerateMatterID(maxID), nil
}

var _ secondary.MatterRepository = (*MatterRepository)(nil)

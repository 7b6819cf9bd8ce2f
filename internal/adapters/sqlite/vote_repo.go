package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/ports/secondary"
)

// VoteRepository implements secondary.VoteRepository with SQLite.
type VoteRepository struct {
	db *sql.DB
}

// NewVoteRepository creates a new SQLite vote repository.
func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Upsert stores a vote. A second vote by the same legislator replaces the first.
// The write only lands while the item is still voting_in_progress, so a vote
// racing a close from another process cannot alter a frozen tally.
func (r *VoteRepository) Upsert(ctx context.Context, vote *secondary.VoteRecord) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO votes (item_id, legislator_id, choice, cast_at)
		 SELECT ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP)
		 WHERE EXISTS (SELECT 1 FROM agenda_items WHERE id = ? AND status = 'voting_in_progress')
		 ON CONFLICT(item_id, legislator_id) DO UPDATE SET
		   choice = excluded.choice,
		   cast_at = excluded.cast_at`,
		vote.ItemID, vote.LegislatorID, vote.Choice, nullTime(vote.CastAt), vote.ItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return fault.New(fault.NotVoting, "agenda item %s is not open for voting", vote.ItemID)
	}

	return nil
}

// ListByItem retrieves the votes cast on an item ordered by legislator.
func (r *VoteRepository) ListByItem(ctx context.Context, itemID string) ([]*secondary.VoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT item_id, legislator_id, choice, cast_at FROM votes WHERE item_id = ? ORDER BY legislator_id",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []*secondary.VoteRecord
	for rows.Next() {
		var castAt sql.NullTime
		record := &secondary.VoteRecord{}
		if err := rows.Scan(&record.ItemID, &record.LegislatorID, &record.Choice, &castAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		record.CastAt = formatTime(castAt)
		votes = append(votes, record)
	}

	return votes, rows.Err()
}

var _ secondary.VoteRepository = (*VoteRepository)(nil)

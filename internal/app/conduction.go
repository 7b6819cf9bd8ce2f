package app

import (
	"context"
	"log/slog"
	"sync"

	coreagenda "github.com/example/plenario/internal/core/agenda"
	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/ports/secondary"
)

// SittingLocks serialises mutating operations on one sitting. Operations on
// different sittings proceed in parallel. Every service that mutates a
// sitting's agenda, attendance, votes or status must share one instance.
type SittingLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// ids serialises next-ID allocation, which spans sittings.
	ids sync.Mutex
}

// NewSittingLocks creates an empty lock table.
func NewSittingLocks() *SittingLocks {
	return &SittingLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the sitting's lock and returns its release function.
func (l *SittingLocks) Lock(sittingID string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[sittingID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sittingID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// LockIDs holds the ID allocation lock until the returned function is called.
// Callers hold it from GetNextID through Create.
func (l *SittingLocks) LockIDs() (unlock func()) {
	l.ids.Lock()
	return l.ids.Unlock
}

// recordEvent appends to the sitting's audit trail. Failures are logged and
// never fail the operation that triggered them.
func recordEvent(ctx context.Context, events secondary.EventWriter, logger *slog.Logger, sittingID, action, subject, detail string) {
	if events == nil {
		return
	}
	if err := events.LogEvent(ctx, sittingID, action, subject, detail); err != nil {
		logger.Warn("failed to record sitting event",
			"sitting", sittingID, "action", action, "subject", subject, "error", err)
	}
}

// loadItemSummaries reads a sitting's agenda in the shape the core guards use.
func loadItemSummaries(ctx context.Context, repo secondary.AgendaRepository, sittingID string) ([]coreagenda.ItemSummary, []*secondary.AgendaItemRecord, error) {
	records, err := repo.ListBySitting(ctx, sittingID)
	if err != nil {
		return nil, nil, err
	}
	return toItemSummaries(records), records, nil
}

func toItemSummaries(records []*secondary.AgendaItemRecord) []coreagenda.ItemSummary {
	items := make([]coreagenda.ItemSummary, len(records))
	for i, r := range records {
		items[i] = coreagenda.ItemSummary{
			ID:       r.ID,
			MatterID: r.MatterID,
			Section:  coreagenda.Section(r.Section),
			Position: r.Position,
			Status:   coreagenda.ItemStatus(r.Status),
		}
	}
	return items
}

func recordToSitting(r *secondary.SittingRecord) *primary.Sitting {
	return &primary.Sitting{
		ID:              r.ID,
		PeriodID:        r.PeriodID,
		Kind:            r.Kind,
		ScheduledAt:     r.ScheduledAt,
		Location:        r.Location,
		Notes:           r.Notes,
		Status:          r.Status,
		AgendaPublished: r.AgendaPublished,
		StatusReason:    r.StatusReason,
		StartedAt:       r.StartedAt,
		ClosedAt:        r.ClosedAt,
		MinutesRef:      r.MinutesRef,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func recordToMatter(r *secondary.MatterRecord) *primary.Matter {
	return &primary.Matter{
		ID:              r.ID,
		Kind:            r.Kind,
		Title:           r.Title,
		Status:          r.Status,
		RequiresVote:    r.RequiresVote,
		RequiresOpinion: r.RequiresOpinion,
		CreatedAt:       r.CreatedAt,
	}
}

func recordToAgendaItem(r *secondary.AgendaItemRecord, matterTitle string) *primary.AgendaItem {
	return &primary.AgendaItem{
		ID:          r.ID,
		SittingID:   r.SittingID,
		MatterID:    r.MatterID,
		MatterTitle: matterTitle,
		Section:     r.Section,
		Position:    r.Position,
		Status:      r.Status,
		Yes:         r.Yes,
		No:          r.No,
		Abstain:     r.Abstain,
		Outcome:     r.Outcome,
		VotedAt:     r.VotedAt,
	}
}

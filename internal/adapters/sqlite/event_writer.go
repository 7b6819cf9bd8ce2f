package sqlite

import (
	"context"
	"sync"

	"github.com/example/plenario/internal/ctxutil"
	"github.com/example/plenario/internal/ports/secondary"
)

// EventWriterAdapter implements secondary.EventWriter using EventRepository.
type EventWriterAdapter struct {
	repo secondary.EventRepository
	// mu serialises ID allocation across sittings; per-sitting locks in the
	// service layer do not cover it.
	mu sync.Mutex
}

// NewEventWriterAdapter creates a new EventWriterAdapter.
func NewEventWriterAdapter(repo secondary.EventRepository) *EventWriterAdapter {
	return &EventWriterAdapter{repo: repo}
}

// LogEvent records an action in a sitting's audit trail, attributed to the
// actor carried by ctx.
func (w *EventWriterAdapter) LogEvent(ctx context.Context, sittingID, action, subject, detail string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.repo.GetNextID(ctx)
	if err != nil {
		return err
	}

	return w.repo.Create(ctx, &secondary.EventRecord{
		ID:        id,
		SittingID: sittingID,
		ActorID:   ctxutil.ActorFromContext(ctx),
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	})
}

var _ secondary.EventWriter = (*EventWriterAdapter)(nil)

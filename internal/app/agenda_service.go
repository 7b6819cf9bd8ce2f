package app

import (
	"context"
	"fmt"
	"log/slog"

	coreagenda "github.com/example/plenario/internal/core/agenda"
	"github.com/example/plenario/internal/core/fault"
	corematter "github.com/example/plenario/internal/core/matter"
	coresitting "github.com/example/plenario/internal/core/sitting"
	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/ports/secondary"
)

// AgendaServiceImpl implements the AgendaService interface.
type AgendaServiceImpl struct {
	sittingRepo secondary.SittingRepository
	agendaRepo  secondary.AgendaRepository
	matterRepo  secondary.MatterRepository
	events      secondary.EventWriter
	locks       *SittingLocks
	logger      *slog.Logger
}

// NewAgendaService creates a new AgendaService with injected dependencies.
// events is optional - if nil, no audit trail is written.
func NewAgendaService(
	sittingRepo secondary.SittingRepository,
	agendaRepo secondary.AgendaRepository,
	matterRepo secondary.MatterRepository,
	events secondary.EventWriter,
	locks *SittingLocks,
	logger *slog.Logger,
) *AgendaServiceImpl {
	return &AgendaServiceImpl{
		sittingRepo: sittingRepo,
		agendaRepo:  agendaRepo,
		matterRepo:  matterRepo,
		events:      events,
		locks:       locks,
		logger:      logger,
	}
}

// ListEligibleMatters lists ready matters not held by another active sitting.
// Matters already on this sitting's agenda stay listed.
func (s *AgendaServiceImpl) ListEligibleMatters(ctx context.Context, sittingID string) ([]*primary.Matter, error) {
	if _, err := s.sittingRepo.GetByID(ctx, sittingID); err != nil {
		return nil, err
	}

	ready := corematter.ReadyStatuses()
	statuses := make([]string, len(ready))
	for i, st := range ready {
		statuses[i] = string(st)
	}

	records, err := s.matterRepo.List(ctx, secondary.MatterFilters{Statuses: statuses})
	if err != nil {
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}

	held, err := s.agendaRepo.ActiveSittingsByMatter(ctx, sittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check scheduled matters: %w", err)
	}

	matters := make([]*primary.Matter, 0, len(records))
	for _, r := range records {
		if _, taken := held[r.ID]; taken {
			continue
		}
		matters = append(matters, recordToMatter(r))
	}
	return matters, nil
}

// AddItem appends a matter at the end of a section of the agenda.
func (s *AgendaServiceImpl) AddItem(ctx context.Context, req primary.AddItemRequest) (*primary.AgendaItem, error) {
	section, err := coreagenda.ParseSection(req.Section)
	if err != nil {
		return nil, fault.New(fault.Validation, "%v", err)
	}

	unlock := s.locks.Lock(req.SittingID)
	defer unlock()

	sitting, err := s.sittingRepo.GetByID(ctx, req.SittingID)
	if err != nil {
		return nil, err
	}
	matter, err := s.matterRepo.GetByID(ctx, req.MatterID)
	if err != nil {
		return nil, err
	}
	items, _, err := loadItemSummaries(ctx, s.agendaRepo, req.SittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}
	held, err := s.agendaRepo.ActiveSittingsByMatter(ctx, req.SittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check scheduled matters: %w", err)
	}

	onAgenda := false
	for _, it := range items {
		if it.MatterID == req.MatterID {
			onAgenda = true
			break
		}
	}

	guardCtx := coreagenda.AddItemContext{
		EditContext: coreagenda.EditContext{
			SittingID:     sitting.ID,
			SittingStatus: sitting.Status,
			Published:     sitting.AgendaPublished,
		},
		MatterID:        matter.ID,
		MatterReady:     corematter.IsReady(corematter.Status(matter.Status)),
		AlreadyOnAgenda: onAgenda,
		OtherSittingID:  held[matter.ID],
	}
	if err := coreagenda.CanAddItem(guardCtx).Error(); err != nil {
		return nil, err
	}

	record, err := createItem(ctx, s.locks, s.agendaRepo, sitting.ID, matter.ID, section, coreagenda.NextPosition(items, section))
	if err != nil {
		return nil, err
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "add_item", record.ID,
		fmt.Sprintf("%s at %s %d", matter.ID, section, record.Position))

	return recordToAgendaItem(record, matter.Title), nil
}

// createItem allocates an ID and stores a pending item. The caller holds the
// sitting's lock.
func createItem(ctx context.Context, locks *SittingLocks, agendaRepo secondary.AgendaRepository,
	sittingID, matterID string, section coreagenda.Section, position int) (*secondary.AgendaItemRecord, error) {
	unlockIDs := locks.LockIDs()
	defer unlockIDs()

	nextID, err := agendaRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate agenda item ID: %w", err)
	}

	record := &secondary.AgendaItemRecord{
		ID:        nextID,
		SittingID: sittingID,
		MatterID:  matterID,
		Section:   string(section),
		Position:  position,
		Status:    string(coreagenda.ItemPending),
	}
	if err := agendaRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create agenda item: %w", err)
	}
	return record, nil
}

// RemoveItem removes an item from an unpublished agenda and closes the gap
// in its section.
func (s *AgendaServiceImpl) RemoveItem(ctx context.Context, itemID string) error {
	item, sitting, unlock, err := s.lockItemSitting(ctx, itemID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := coreagenda.CanEditAgenda(editContext(sitting)).Error(); err != nil {
		return err
	}

	items, _, err := loadItemSummaries(ctx, s.agendaRepo, sitting.ID)
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}

	if err := s.agendaRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to remove agenda item: %w", err)
	}

	section := coreagenda.Section(item.Section)
	if err := s.agendaRepo.SetPositions(ctx, sitting.ID, item.Section, coreagenda.Renumber(items, section, item.ID)); err != nil {
		return fmt.Errorf("failed to renumber %s: %w", section, err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "remove_item", item.ID, item.MatterID)
	return nil
}

// Reorder rewrites the order of one section.
func (s *AgendaServiceImpl) Reorder(ctx context.Context, req primary.ReorderRequest) error {
	section, err := coreagenda.ParseSection(req.Section)
	if err != nil {
		return fault.New(fault.Validation, "%v", err)
	}

	unlock := s.locks.Lock(req.SittingID)
	defer unlock()

	sitting, err := s.sittingRepo.GetByID(ctx, req.SittingID)
	if err != nil {
		return err
	}
	if err := coreagenda.CanEditAgenda(editContext(sitting)).Error(); err != nil {
		return err
	}

	items, _, err := loadItemSummaries(ctx, s.agendaRepo, sitting.ID)
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}
	if err := coreagenda.ValidateReorder(items, section, req.ItemIDs).Error(); err != nil {
		return err
	}

	if err := s.agendaRepo.SetPositions(ctx, sitting.ID, string(section), req.ItemIDs); err != nil {
		return fmt.Errorf("failed to reorder %s: %w", section, err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "reorder", string(section), fmt.Sprint(req.ItemIDs))
	return nil
}

// ChangeSection moves an item to the end of another section.
func (s *AgendaServiceImpl) ChangeSection(ctx context.Context, itemID, section string) error {
	target, err := coreagenda.ParseSection(section)
	if err != nil {
		return fault.New(fault.Validation, "%v", err)
	}

	item, sitting, unlock, err := s.lockItemSitting(ctx, itemID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := coreagenda.CanEditAgenda(editContext(sitting)).Error(); err != nil {
		return err
	}

	from := coreagenda.Section(item.Section)
	if from == target {
		return nil
	}

	items, _, err := loadItemSummaries(ctx, s.agendaRepo, sitting.ID)
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}

	moved := append(coreagenda.Renumber(items, target, ""), item.ID)
	if err := s.agendaRepo.SetPositions(ctx, sitting.ID, string(target), moved); err != nil {
		return fmt.Errorf("failed to move item to %s: %w", target, err)
	}
	if err := s.agendaRepo.SetPositions(ctx, sitting.ID, string(from), coreagenda.Renumber(items, from, item.ID)); err != nil {
		return fmt.Errorf("failed to renumber %s: %w", from, err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "change_section", item.ID, fmt.Sprintf("%s -> %s", from, target))
	return nil
}

// Publish freezes the agenda structure.
func (s *AgendaServiceImpl) Publish(ctx context.Context, sittingID string) error {
	return s.setPublished(ctx, sittingID, true)
}

// Unpublish reopens a published agenda while the sitting is still scheduled.
func (s *AgendaServiceImpl) Unpublish(ctx context.Context, sittingID string) error {
	return s.setPublished(ctx, sittingID, false)
}

func (s *AgendaServiceImpl) setPublished(ctx context.Context, sittingID string, publish bool) error {
	unlock := s.locks.Lock(sittingID)
	defer unlock()

	sitting, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return err
	}
	items, err := s.agendaRepo.ListBySitting(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}

	guardCtx := coreagenda.PublishContext{
		SittingID:     sitting.ID,
		SittingStatus: sitting.Status,
		Published:     sitting.AgendaPublished,
		ItemCount:     len(items),
	}
	action := "publish"
	result := coreagenda.CanPublish(guardCtx)
	if !publish {
		action = "unpublish"
		result = coreagenda.CanUnpublish(guardCtx)
	}
	if err := result.Error(); err != nil {
		return err
	}

	if err := s.sittingRepo.SetAgendaPublished(ctx, sittingID, publish); err != nil {
		return fmt.Errorf("failed to %s agenda: %w", action, err)
	}

	recordEvent(ctx, s.events, s.logger, sittingID, action, sittingID, fmt.Sprintf("%d item(s)", len(items)))
	return nil
}

// GetAgenda retrieves the agenda ordered by section then position.
func (s *AgendaServiceImpl) GetAgenda(ctx context.Context, sittingID string) (*primary.Agenda, error) {
	sitting, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, err
	}
	records, err := s.agendaRepo.ListBySitting(ctx, sittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}

	agenda := &primary.Agenda{
		SittingID: sitting.ID,
		Published: sitting.AgendaPublished,
		Items:     make([]*primary.AgendaItem, len(records)),
	}
	for i, r := range records {
		agenda.Items[i] = recordToAgendaItem(r, s.matterTitle(ctx, r.MatterID))
	}
	return agenda, nil
}

// GetItem retrieves a single agenda item.
func (s *AgendaServiceImpl) GetItem(ctx context.Context, itemID string) (*primary.AgendaItem, error) {
	record, err := s.agendaRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return recordToAgendaItem(record, s.matterTitle(ctx, record.MatterID)), nil
}

// MarkRead finishes an item whose matter does not require a vote and marks
// the matter as read.
func (s *AgendaServiceImpl) MarkRead(ctx context.Context, itemID string) error {
	item, sitting, unlock, err := s.lockItemSitting(ctx, itemID)
	if err != nil {
		return err
	}
	defer unlock()

	matter, err := s.matterRepo.GetByID(ctx, item.MatterID)
	if err != nil {
		return err
	}

	guardCtx := conductContext(item, sitting)
	guardCtx.RequiresVote = matter.RequiresVote
	if err := coreagenda.CanMarkRead(guardCtx).Error(); err != nil {
		return err
	}

	if err := s.agendaRepo.UpdateStatus(ctx, item.ID, string(coreagenda.ItemRead)); err != nil {
		return fmt.Errorf("failed to mark item read: %w", err)
	}
	if err := s.matterRepo.UpdateStatus(ctx, matter.ID, string(corematter.StatusAfterRead())); err != nil {
		// the item is already read; the matter can be corrected through its own service
		s.logger.Error("failed to advance matter after reading",
			"item", item.ID, "matter", matter.ID, "error", err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "read", item.ID, matter.ID)
	return nil
}

// PostponeItem defers a pending item. The matter keeps its status and may be
// scheduled again once this sitting is over.
func (s *AgendaServiceImpl) PostponeItem(ctx context.Context, itemID string) error {
	return s.conduct(ctx, itemID, coreagenda.ItemPostponed, coreagenda.CanPostponeItem, "postpone_item")
}

// WithdrawItem withdraws a pending item from the sitting.
func (s *AgendaServiceImpl) WithdrawItem(ctx context.Context, itemID string) error {
	return s.conduct(ctx, itemID, coreagenda.ItemWithdrawn, coreagenda.CanWithdrawItem, "withdraw_item")
}

func (s *AgendaServiceImpl) conduct(ctx context.Context, itemID string, to coreagenda.ItemStatus,
	guard func(coreagenda.ConductContext) coreagenda.GuardResult, action string) error {
	item, sitting, unlock, err := s.lockItemSitting(ctx, itemID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := guard(conductContext(item, sitting)).Error(); err != nil {
		return err
	}

	if err := s.agendaRepo.UpdateStatus(ctx, item.ID, string(to)); err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, action, item.ID, item.MatterID)
	return nil
}

// lockItemSitting resolves an item's sitting, locks it, and re-reads both
// under the lock.
func (s *AgendaServiceImpl) lockItemSitting(ctx context.Context, itemID string) (*secondary.AgendaItemRecord, *secondary.SittingRecord, func(), error) {
	return lockItemSitting(ctx, s.locks, s.agendaRepo, s.sittingRepo, itemID)
}

func lockItemSitting(ctx context.Context, locks *SittingLocks, agendaRepo secondary.AgendaRepository,
	sittingRepo secondary.SittingRepository, itemID string) (*secondary.AgendaItemRecord, *secondary.SittingRecord, func(), error) {
	probe, err := agendaRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, nil, err
	}

	unlock := locks.Lock(probe.SittingID)
	item, err := agendaRepo.GetByID(ctx, itemID)
	if err != nil {
		unlock()
		return nil, nil, nil, err
	}
	sitting, err := sittingRepo.GetByID(ctx, item.SittingID)
	if err != nil {
		unlock()
		return nil, nil, nil, err
	}
	return item, sitting, unlock, nil
}

func (s *AgendaServiceImpl) matterTitle(ctx context.Context, matterID string) string {
	matter, err := s.matterRepo.GetByID(ctx, matterID)
	if err != nil {
		s.logger.Warn("failed to resolve matter title", "matter", matterID, "error", err)
		return ""
	}
	return matter.Title
}

func editContext(sitting *secondary.SittingRecord) coreagenda.EditContext {
	return coreagenda.EditContext{
		SittingID:     sitting.ID,
		SittingStatus: sitting.Status,
		Published:     sitting.AgendaPublished,
	}
}

func conductContext(item *secondary.AgendaItemRecord, sitting *secondary.SittingRecord) coreagenda.ConductContext {
	return coreagenda.ConductContext{
		ItemID:            item.ID,
		SittingStatus:     sitting.Status,
		SittingInProgress: coresitting.Status(sitting.Status) == coresitting.StatusInProgress,
		Status:            coreagenda.ItemStatus(item.Status),
	}
}

var _ primary.AgendaService = (*AgendaServiceImpl)(nil)

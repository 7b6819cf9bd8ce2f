package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreagenda "github.com/example/plenario/internal/core/agenda"
	"github.com/example/plenario/internal/core/fault"
	corematter "github.com/example/plenario/internal/core/matter"
	"github.com/example/plenario/internal/core/roster"
	"github.com/example/plenario/internal/core/schedule"
	coresitting "github.com/example/plenario/internal/core/sitting"
	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/ports/secondary"
)

// SittingServiceImpl implements the SittingService interface.
type SittingServiceImpl struct {
	sittingRepo    secondary.SittingRepository
	agendaRepo     secondary.AgendaRepository
	attendanceRepo secondary.AttendanceRepository
	matterRepo     secondary.MatterRepository
	periodRepo     secondary.PeriodRepository
	roster         secondary.LegislatorRoster
	minutes        secondary.MinutesGenerator
	minutesReader  secondary.MinutesReader
	events         secondary.EventWriter
	eventRepo      secondary.EventRepository
	calendar       *schedule.Calendar
	locks          *SittingLocks
	logger         *slog.Logger
	now            func() time.Time
}

// SittingDeps groups the collaborators of the sitting lifecycle.
// Minutes, MinutesReader, Events and EventRepo are optional.
type SittingDeps struct {
	SittingRepo    secondary.SittingRepository
	AgendaRepo     secondary.AgendaRepository
	AttendanceRepo secondary.AttendanceRepository
	MatterRepo     secondary.MatterRepository
	PeriodRepo     secondary.PeriodRepository
	Roster         secondary.LegislatorRoster
	Minutes        secondary.MinutesGenerator
	MinutesReader  secondary.MinutesReader
	Events         secondary.EventWriter
	EventRepo      secondary.EventRepository
	Calendar       *schedule.Calendar
	Locks          *SittingLocks
	Logger         *slog.Logger
}

// NewSittingService creates a new SittingService with injected dependencies.
func NewSittingService(deps SittingDeps) *SittingServiceImpl {
	return &SittingServiceImpl{
		sittingRepo:    deps.SittingRepo,
		agendaRepo:     deps.AgendaRepo,
		attendanceRepo: deps.AttendanceRepo,
		matterRepo:     deps.MatterRepo,
		periodRepo:     deps.PeriodRepo,
		roster:         deps.Roster,
		minutes:        deps.Minutes,
		minutesReader:  deps.MinutesReader,
		events:         deps.Events,
		eventRepo:      deps.EventRepo,
		calendar:       deps.Calendar,
		locks:          deps.Locks,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

// ScheduleSitting creates a scheduled sitting inside its legislative period.
func (s *SittingServiceImpl) ScheduleSitting(ctx context.Context, req primary.ScheduleSittingRequest) (*primary.ScheduleSittingResponse, error) {
	kind, err := coresitting.ParseKind(req.Kind)
	if err != nil {
		return nil, fault.New(fault.Validation, "%v", err)
	}
	at, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, fault.New(fault.Validation, "invalid scheduled time %q (want RFC3339)", req.ScheduledAt)
	}

	period, err := s.periodRepo.GetByID(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}
	if !roster.Contains(period.StartsOn, period.EndsOn, at) {
		return nil, fault.New(fault.Validation, "%s falls outside period %s (%s..%s)",
			at.Format("2006-01-02"), period.ID, period.StartsOn, period.EndsOn)
	}
	if s.calendar != nil {
		if err := s.calendar.CanConvene(kind == coresitting.KindOrdinary, at); err != nil {
			return nil, fault.New(fault.Validation, "%v", err)
		}
	}

	unlockIDs := s.locks.LockIDs()
	nextID, err := s.sittingRepo.GetNextID(ctx)
	if err != nil {
		unlockIDs()
		return nil, fmt.Errorf("failed to generate sitting ID: %w", err)
	}
	record := &secondary.SittingRecord{
		ID:          nextID,
		PeriodID:    period.ID,
		Kind:        string(kind),
		ScheduledAt: at.UTC().Format(time.RFC3339),
		Location:    req.Location,
		Notes:       req.Notes,
		Status:      string(coresitting.InitialStatus()),
	}
	err = s.sittingRepo.Create(ctx, record)
	unlockIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to create sitting: %w", err)
	}

	created, err := s.sittingRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created sitting: %w", err)
	}

	recordEvent(ctx, s.events, s.logger, created.ID, "schedule", created.ID,
		fmt.Sprintf("%s at %s", created.Kind, created.ScheduledAt))

	return &primary.ScheduleSittingResponse{
		SittingID: created.ID,
		Sitting:   recordToSitting(created),
	}, nil
}

// GetSitting retrieves a sitting by ID.
func (s *SittingServiceImpl) GetSitting(ctx context.Context, sittingID string) (*primary.Sitting, error) {
	record, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, err
	}
	return recordToSitting(record), nil
}

// ListSittings lists sittings with optional filters.
func (s *SittingServiceImpl) ListSittings(ctx context.Context, filters primary.SittingFilters) ([]*primary.Sitting, error) {
	records, err := s.sittingRepo.List(ctx, secondary.SittingFilters{
		PeriodID: filters.PeriodID,
		Status:   filters.Status,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sittings: %w", err)
	}

	sittings := make([]*primary.Sitting, len(records))
	for i, r := range records {
		sittings[i] = recordToSitting(r)
	}
	return sittings, nil
}

// DeleteSitting removes a sitting that never reached conduction.
func (s *SittingServiceImpl) DeleteSitting(ctx context.Context, sittingID string) error {
	unlock := s.locks.Lock(sittingID)
	defer unlock()

	record, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return err
	}

	guardCtx := coresitting.DeleteContext{
		SittingID:       record.ID,
		Status:          coresitting.Status(record.Status),
		AgendaPublished: record.AgendaPublished,
	}
	if err := coresitting.CanDeleteSitting(guardCtx).Error(); err != nil {
		return err
	}

	if err := s.sittingRepo.Delete(ctx, sittingID); err != nil {
		return fmt.Errorf("failed to delete sitting: %w", err)
	}

	s.logger.Info("sitting deleted", "sitting", sittingID)
	return nil
}

// StartSitting opens a scheduled sitting and seeds an absent mark for every
// legislator on the period roster.
func (s *SittingServiceImpl) StartSitting(ctx context.Context, sittingID string) error {
	_, err := s.transition(ctx, sittingID, coresitting.ActionStart, "")
	return err
}

// SuspendSitting pauses a sitting in progress. Rejected while a vote is open.
func (s *SittingServiceImpl) SuspendSitting(ctx context.Context, sittingID string) error {
	_, err := s.transition(ctx, sittingID, coresitting.ActionSuspend, "")
	return err
}

// ResumeSitting continues a suspended sitting.
func (s *SittingServiceImpl) ResumeSitting(ctx context.Context, sittingID string) error {
	_, err := s.transition(ctx, sittingID, coresitting.ActionResume, "")
	return err
}

// CancelSitting cancels a scheduled or suspended sitting.
func (s *SittingServiceImpl) CancelSitting(ctx context.Context, sittingID, reason string) error {
	_, err := s.transition(ctx, sittingID, coresitting.ActionCancel, reason)
	return err
}

// PostponeSitting postpones a scheduled sitting.
func (s *SittingServiceImpl) PostponeSitting(ctx context.Context, sittingID, reason string) error {
	_, err := s.transition(ctx, sittingID, coresitting.ActionPostpone, reason)
	return err
}

// CloseSitting marks the sitting held, then produces the minutes and links
// them into the next sitting's Expediente. Failures after the sitting is held
// are logged and reported as empty fields.
func (s *SittingServiceImpl) CloseSitting(ctx context.Context, sittingID string) (*primary.CloseSittingResponse, error) {
	held, err := s.transition(ctx, sittingID, coresitting.ActionClose, "")
	if err != nil {
		return nil, err
	}
	return s.afterHeld(ctx, held), nil
}

// transition applies a lifecycle action under the sitting's lock and returns
// the updated record.
func (s *SittingServiceImpl) transition(ctx context.Context, sittingID string, action coresitting.Action, reason string) (*secondary.SittingRecord, error) {
	unlock := s.locks.Lock(sittingID)
	defer unlock()

	record, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, err
	}
	items, _, err := loadItemSummaries(ctx, s.agendaRepo, sittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}

	from := coresitting.Status(record.Status)
	guardCtx := coresitting.TransitionContext{
		SittingID:       record.ID,
		Status:          from,
		AgendaPublished: record.AgendaPublished,
		ItemCount:       len(items),
		OpenItemID:      coreagenda.OpenItem(items),
		UnfinishedItems: coreagenda.Unfinished(items),
		Reason:          reason,
	}
	if err := coresitting.CanTransition(guardCtx, action).Error(); err != nil {
		return nil, err
	}

	if action == coresitting.ActionStart {
		if err := s.seedRollCall(ctx, record); err != nil {
			return nil, err
		}
	}

	to, _ := coresitting.Next(from, action)
	result := coresitting.ApplyTransition(from, to, s.now().UTC())
	update := secondary.SittingStatusUpdate{
		Status:       string(result.NewStatus),
		StatusReason: reason,
	}
	if result.StartedAt != nil {
		update.StartedAt = result.StartedAt.Format(time.RFC3339)
	}
	if result.ClosedAt != nil {
		update.ClosedAt = result.ClosedAt.Format(time.RFC3339)
	}
	if err := s.sittingRepo.UpdateStatus(ctx, sittingID, update); err != nil {
		return nil, fmt.Errorf("failed to %s sitting: %w", action, err)
	}

	detail := fmt.Sprintf("%s -> %s", from, to)
	if reason != "" {
		detail += ": " + reason
	}
	recordEvent(ctx, s.events, s.logger, sittingID, string(action), sittingID, detail)

	updated, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sitting: %w", err)
	}
	return updated, nil
}

func (s *SittingServiceImpl) seedRollCall(ctx context.Context, record *secondary.SittingRecord) error {
	ids, err := s.roster.EligibleForPeriod(ctx, record.PeriodID)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if err := s.attendanceRepo.Seed(ctx, record.ID, ids); err != nil {
		return fmt.Errorf("failed to seed attendance: %w", err)
	}
	return nil
}

// afterHeld runs the follow-ups of a held sitting. The held sitting's lock is
// not held; the next sitting's lock is taken for the linkage.
func (s *SittingServiceImpl) afterHeld(ctx context.Context, held *secondary.SittingRecord) *primary.CloseSittingResponse {
	resp := &primary.CloseSittingResponse{}
	if s.minutes == nil {
		return resp
	}

	ref, err := s.generateMinutes(ctx, held)
	if err != nil {
		s.logger.Warn("minutes generation failed", "sitting", held.ID, "error", err)
		return resp
	}
	resp.MinutesRef = ref
	if err := s.sittingRepo.SetMinutesRef(ctx, held.ID, ref); err != nil {
		s.logger.Warn("failed to store minutes reference", "sitting", held.ID, "ref", ref, "error", err)
	}
	recordEvent(ctx, s.events, s.logger, held.ID, "minutes", ref, "")

	next, err := s.periodRepo.NextScheduledSitting(ctx, held.PeriodID, held.ScheduledAt)
	if err != nil {
		s.logger.Warn("failed to find next sitting", "sitting", held.ID, "error", err)
		return resp
	}
	if next == nil {
		s.logger.Info("no next sitting scheduled; minutes not linked", "sitting", held.ID, "period", held.PeriodID)
		return resp
	}

	itemID, err := s.linkMinutes(ctx, held, next.ID)
	if err != nil {
		s.logger.Warn("failed to link minutes to next sitting",
			"sitting", held.ID, "next", next.ID, "error", err)
		return resp
	}
	resp.NextSittingID = next.ID
	resp.LinkedMinutesTo = itemID
	return resp
}

func (s *SittingServiceImpl) generateMinutes(ctx context.Context, held *secondary.SittingRecord) (string, error) {
	entries, marks, err := rollCall(ctx, s.roster, s.attendanceRepo, held)
	if err != nil {
		return "", err
	}
	records, err := s.agendaRepo.ListBySitting(ctx, held.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load agenda: %w", err)
	}

	draft := &secondary.MinutesDraft{Sitting: *held}
	for _, e := range entries {
		a := secondary.AttendanceRecord{
			SittingID:     held.ID,
			LegislatorID:  e.LegislatorID,
			Status:        string(e.Status),
			Justification: e.Justification,
		}
		if m, ok := marks[e.LegislatorID]; ok {
			a.MarkedAt = m.MarkedAt
		}
		draft.Attendance = append(draft.Attendance, a)
	}
	for _, r := range records {
		title := ""
		if m, err := s.matterRepo.GetByID(ctx, r.MatterID); err == nil {
			title = m.Title
		}
		draft.Items = append(draft.Items, secondary.MinutesItem{
			ItemID:      r.ID,
			MatterID:    r.MatterID,
			MatterTitle: title,
			Section:     r.Section,
			Position:    r.Position,
			Status:      r.Status,
			Yes:         r.Yes,
			No:          r.No,
			Abstain:     r.Abstain,
			Outcome:     r.Outcome,
		})
	}

	return s.minutes.Generate(ctx, draft)
}

// linkMinutes files the held sitting's minutes as a matter and appends it to
// the Expediente of the next sitting, which must still accept agenda edits.
func (s *SittingServiceImpl) linkMinutes(ctx context.Context, held *secondary.SittingRecord, nextID string) (string, error) {
	unlock := s.locks.Lock(nextID)
	defer unlock()

	next, err := s.sittingRepo.GetByID(ctx, nextID)
	if err != nil {
		return "", err
	}
	if err := coreagenda.CanEditAgenda(editContext(next)).Error(); err != nil {
		return "", err
	}
	items, _, err := loadItemSummaries(ctx, s.agendaRepo, next.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load agenda: %w", err)
	}

	caps := corematter.CapabilitiesOf(corematter.KindMinutes)
	matter, err := createMatter(ctx, s.locks, s.matterRepo, corematter.KindMinutes,
		fmt.Sprintf("Ata da sessão %s", held.ID), caps.RequiresVote, caps.RequiresOpinion)
	if err != nil {
		return "", err
	}

	section := coreagenda.SectionExpediente
	item, err := createItem(ctx, s.locks, s.agendaRepo, next.ID, matter.ID, section, coreagenda.NextPosition(items, section))
	if err != nil {
		// An unlinked minutes matter must not stay on the eligible list.
		if derr := s.matterRepo.Delete(ctx, matter.ID); derr != nil {
			s.logger.Warn("failed to remove unlinked minutes matter", "matter", matter.ID, "error", derr)
		}
		return "", err
	}

	recordEvent(ctx, s.events, s.logger, next.ID, "add_item", item.ID,
		fmt.Sprintf("%s (minutes of %s) at %s %d", matter.ID, held.ID, section, item.Position))
	return item.ID, nil
}

// GetMinutes retrieves the minutes of a held sitting.
func (s *SittingServiceImpl) GetMinutes(ctx context.Context, sittingID string) (*primary.Minutes, error) {
	record, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, err
	}
	if record.MinutesRef == "" || s.minutesReader == nil {
		return nil, fault.NotFoundf("sitting %s has no minutes", sittingID)
	}

	m, err := s.minutesReader.GetByRef(ctx, record.MinutesRef)
	if err != nil {
		return nil, err
	}
	return &primary.Minutes{Ref: m.Ref, SittingID: m.SittingID, Body: m.Body, CreatedAt: m.CreatedAt}, nil
}

// SittingLog lists the audit trail of a sitting, oldest first.
func (s *SittingServiceImpl) SittingLog(ctx context.Context, sittingID string, limit int) ([]*primary.SittingEvent, error) {
	if _, err := s.sittingRepo.GetByID(ctx, sittingID); err != nil {
		return nil, err
	}
	if s.eventRepo == nil {
		return nil, nil
	}

	records, err := s.eventRepo.ListBySitting(ctx, sittingID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitting events: %w", err)
	}

	events := make([]*primary.SittingEvent, len(records))
	for i, r := range records {
		events[i] = &primary.SittingEvent{
			ID:        r.ID,
			SittingID: r.SittingID,
			ActorID:   r.ActorID,
			Action:    r.Action,
			Subject:   r.Subject,
			Detail:    r.Detail,
			CreatedAt: r.CreatedAt,
		}
	}
	return events, nil
}

var _ primary.SittingService = (*SittingServiceImpl)(nil)

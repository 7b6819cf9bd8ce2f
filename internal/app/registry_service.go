package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/plenario/internal/core/fault"
	corematter "github.com/example/plenario/internal/core/matter"
	coreopinion "github.com/example/plenario/internal/core/opinion"
	"github.com/example/plenario/internal/core/roster"
	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/ports/secondary"
)

// MatterServiceImpl implements the MatterService interface.
type MatterServiceImpl struct {
	matterRepo secondary.MatterRepository
	locks      *SittingLocks
	logger     *slog.Logger
}

// NewMatterService creates a new MatterService with injected dependencies.
func NewMatterService(matterRepo secondary.MatterRepository, locks *SittingLocks, logger *slog.Logger) *MatterServiceImpl {
	return &MatterServiceImpl{matterRepo: matterRepo, locks: locks, logger: logger}
}

// FileMatter registers a matter. Capabilities come from the kind unless the
// request overrides them.
func (s *MatterServiceImpl) FileMatter(ctx context.Context, req primary.FileMatterRequest) (*primary.Matter, error) {
	kind, err := corematter.ParseKind(req.Kind)
	if err != nil {
		return nil, fault.New(fault.Validation, "%v", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fault.New(fault.Validation, "matter title is required")
	}

	caps := corematter.CapabilitiesOf(kind)
	if req.RequiresVote != nil {
		caps.RequiresVote = *req.RequiresVote
	}
	if req.RequiresOpinion != nil {
		caps.RequiresOpinion = *req.RequiresOpinion
	}

	record, err := createMatter(ctx, s.locks, s.matterRepo, kind, req.Title, caps.RequiresVote, caps.RequiresOpinion)
	if err != nil {
		return nil, err
	}
	return recordToMatter(record), nil
}

// createMatter allocates an ID and stores a filed matter.
func createMatter(ctx context.Context, locks *SittingLocks, matterRepo secondary.MatterRepository,
	kind corematter.Kind, title string, requiresVote, requiresOpinion bool) (*secondary.MatterRecord, error) {
	unlockIDs := locks.LockIDs()
	defer unlockIDs()

	nextID, err := matterRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate matter ID: %w", err)
	}

	record := &secondary.MatterRecord{
		ID:              nextID,
		Kind:            string(kind),
		Title:           title,
		Status:          string(corematter.InitialStatus()),
		RequiresVote:    requiresVote,
		RequiresOpinion: requiresOpinion,
	}
	if err := matterRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create matter: %w", err)
	}
	return record, nil
}

// GetMatter retrieves a matter by ID.
func (s *MatterServiceImpl) GetMatter(ctx context.Context, matterID string) (*primary.Matter, error) {
	record, err := s.matterRepo.GetByID(ctx, matterID)
	if err != nil {
		return nil, err
	}
	return recordToMatter(record), nil
}

// ListMatters lists matters with optional filters.
func (s *MatterServiceImpl) ListMatters(ctx context.Context, filters primary.MatterFilters) ([]*primary.Matter, error) {
	var statuses []string
	if filters.Status != "" {
		statuses = []string{filters.Status}
	}
	records, err := s.matterRepo.List(ctx, secondary.MatterFilters{
		Kind:     filters.Kind,
		Statuses: statuses,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matters: %w", err)
	}

	matters := make([]*primary.Matter, len(records))
	for i, r := range records {
		matters[i] = recordToMatter(r)
	}
	return matters, nil
}

// SetMatterStatus moves a matter outside of conduction, e.g. into committee.
func (s *MatterServiceImpl) SetMatterStatus(ctx context.Context, matterID, status string) error {
	st, err := corematter.ParseStatus(status)
	if err != nil {
		return fault.New(fault.Validation, "%v", err)
	}
	if _, err := s.matterRepo.GetByID(ctx, matterID); err != nil {
		return err
	}
	if err := s.matterRepo.UpdateStatus(ctx, matterID, string(st)); err != nil {
		return fmt.Errorf("failed to update matter status: %w", err)
	}
	s.logger.Info("matter status changed", "matter", matterID, "status", st)
	return nil
}

var _ primary.MatterService = (*MatterServiceImpl)(nil)

// OpinionServiceImpl implements the OpinionService interface.
type OpinionServiceImpl struct {
	opinionRepo secondary.OpinionRepository
	matterRepo  secondary.MatterRepository
	locks       *SittingLocks
}

// NewOpinionService creates a new OpinionService with injected dependencies.
func NewOpinionService(opinionRepo secondary.OpinionRepository, matterRepo secondary.MatterRepository, locks *SittingLocks) *OpinionServiceImpl {
	return &OpinionServiceImpl{opinionRepo: opinionRepo, matterRepo: matterRepo, locks: locks}
}

// RequestOpinion opens a pending opinion of a committee on a matter.
func (s *OpinionServiceImpl) RequestOpinion(ctx context.Context, matterID, committee string) (*primary.Opinion, error) {
	committee = strings.TrimSpace(committee)
	if committee == "" {
		return nil, fault.New(fault.Validation, "committee is required")
	}
	if _, err := s.matterRepo.GetByID(ctx, matterID); err != nil {
		return nil, err
	}

	unlockIDs := s.locks.LockIDs()
	defer unlockIDs()

	nextID, err := s.opinionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate opinion ID: %w", err)
	}
	record := &secondary.OpinionRecord{
		ID:        nextID,
		MatterID:  matterID,
		Committee: committee,
		Status:    string(coreopinion.StatusPending),
	}
	if err := s.opinionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create opinion: %w", err)
	}
	return recordToOpinion(record), nil
}

// IssueOpinion finalizes an opinion as issued.
func (s *OpinionServiceImpl) IssueOpinion(ctx context.Context, opinionID string) error {
	return s.finalize(ctx, opinionID, coreopinion.StatusIssued)
}

// WaiveOpinion finalizes an opinion as waived.
func (s *OpinionServiceImpl) WaiveOpinion(ctx context.Context, opinionID string) error {
	return s.finalize(ctx, opinionID, coreopinion.StatusWaived)
}

func (s *OpinionServiceImpl) finalize(ctx context.Context, opinionID string, to coreopinion.Status) error {
	record, err := s.opinionRepo.GetByID(ctx, opinionID)
	if err != nil {
		return err
	}
	if coreopinion.IsFinalized(coreopinion.Status(record.Status)) {
		return fault.New(fault.InvalidState, "opinion %s is already %s", opinionID, record.Status)
	}
	if err := s.opinionRepo.UpdateStatus(ctx, opinionID, string(to)); err != nil {
		return fmt.Errorf("failed to update opinion: %w", err)
	}
	return nil
}

// ListOpinions lists the opinions of a matter.
func (s *OpinionServiceImpl) ListOpinions(ctx context.Context, matterID string) ([]*primary.Opinion, error) {
	if _, err := s.matterRepo.GetByID(ctx, matterID); err != nil {
		return nil, err
	}
	records, err := s.opinionRepo.ListByMatter(ctx, matterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opinions: %w", err)
	}

	opinions := make([]*primary.Opinion, len(records))
	for i, r := range records {
		opinions[i] = recordToOpinion(r)
	}
	return opinions, nil
}

func recordToOpinion(r *secondary.OpinionRecord) *primary.Opinion {
	return &primary.Opinion{
		ID:        r.ID,
		MatterID:  r.MatterID,
		Committee: r.Committee,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

var _ primary.OpinionService = (*OpinionServiceImpl)(nil)

// RosterServiceImpl implements the RosterService interface.
type RosterServiceImpl struct {
	periodRepo     secondary.PeriodRepository
	legislatorRepo secondary.LegislatorRepository
	locks          *SittingLocks
}

// NewRosterService creates a new RosterService with injected dependencies.
func NewRosterService(periodRepo secondary.PeriodRepository, legislatorRepo secondary.LegislatorRepository, locks *SittingLocks) *RosterServiceImpl {
	return &RosterServiceImpl{periodRepo: periodRepo, legislatorRepo: legislatorRepo, locks: locks}
}

// CreatePeriod registers a legislative period.
func (s *RosterServiceImpl) CreatePeriod(ctx context.Context, req primary.CreatePeriodRequest) (*primary.Period, error) {
	if err := roster.ValidatePeriod(req.Name, req.StartsOn, req.EndsOn); err != nil {
		return nil, fault.New(fault.Validation, "%v", err)
	}

	unlockIDs := s.locks.LockIDs()
	defer unlockIDs()

	nextID, err := s.periodRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate period ID: %w", err)
	}
	record := &secondary.PeriodRecord{
		ID:       nextID,
		Name:     strings.TrimSpace(req.Name),
		StartsOn: req.StartsOn,
		EndsOn:   req.EndsOn,
	}
	if err := s.periodRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}
	return recordToPeriod(record), nil
}

// ListPeriods lists periods, most recent first.
func (s *RosterServiceImpl) ListPeriods(ctx context.Context) ([]*primary.Period, error) {
	records, err := s.periodRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	periods := make([]*primary.Period, len(records))
	for i, r := range records {
		periods[i] = recordToPeriod(r)
	}
	return periods, nil
}

// RegisterLegislator registers a legislator.
func (s *RosterServiceImpl) RegisterLegislator(ctx context.Context, name, party string) (*primary.Legislator, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.New(fault.Validation, "legislator name is required")
	}

	unlockIDs := s.locks.LockIDs()
	defer unlockIDs()

	nextID, err := s.legislatorRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate legislator ID: %w", err)
	}
	record := &secondary.LegislatorRecord{ID: nextID, Name: name, Party: strings.TrimSpace(party)}
	if err := s.legislatorRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create legislator: %w", err)
	}
	return &primary.Legislator{ID: record.ID, Name: record.Name, Party: record.Party}, nil
}

// ListLegislators lists every legislator.
func (s *RosterServiceImpl) ListLegislators(ctx context.Context) ([]*primary.Legislator, error) {
	records, err := s.legislatorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list legislators: %w", err)
	}
	out := make([]*primary.Legislator, len(records))
	for i, r := range records {
		out[i] = &primary.Legislator{ID: r.ID, Name: r.Name, Party: r.Party}
	}
	return out, nil
}

// SetMembership adds or removes a legislator from a period's roster. Sittings
// already started keep the roll call they were seeded with.
func (s *RosterServiceImpl) SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error {
	if _, err := s.periodRepo.GetByID(ctx, periodID); err != nil {
		return err
	}
	if _, err := s.legislatorRepo.GetByID(ctx, legislatorID); err != nil {
		return err
	}
	if err := s.legislatorRepo.SetMembership(ctx, periodID, legislatorID, active); err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	return nil
}

// Roster lists the eligible legislators of a period.
func (s *RosterServiceImpl) Roster(ctx context.Context, periodID string) ([]*primary.Legislator, error) {
	if _, err := s.periodRepo.GetByID(ctx, periodID); err != nil {
		return nil, err
	}
	ids, err := s.legislatorRepo.EligibleForPeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	out := make([]*primary.Legislator, 0, len(ids))
	for _, id := range ids {
		r, err := s.legislatorRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, &primary.Legislator{ID: r.ID, Name: r.Name, Party: r.Party})
	}
	return out, nil
}

func recordToPeriod(r *secondary.PeriodRecord) *primary.Period {
	return &primary.Period{
		ID:        r.ID,
		Name:      r.Name,
		StartsOn:  r.StartsOn,
		EndsOn:    r.EndsOn,
		CreatedAt: r.CreatedAt,
	}
}

var _ primary.RosterService = (*RosterServiceImpl)(nil)

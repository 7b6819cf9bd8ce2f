package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreagenda "github.com/example/plenario/internal/core/agenda"
	coreattendance "github.com/example/plenario/internal/core/attendance"
	"github.com/example/plenario/internal/core/fault"
	corematter "github.com/example/plenario/internal/core/matter"
	coreopinion "github.com/example/plenario/internal/core/opinion"
	coresitting "github.com/example/plenario/internal/core/sitting"
	"github.com/example/plenario/internal/core/tally"
	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/ports/secondary"
)

// VotingServiceImpl implements the VotingService interface.
type VotingServiceImpl struct {
	sittingRepo    secondary.SittingRepository
	agendaRepo     secondary.AgendaRepository
	matterRepo     secondary.MatterRepository
	opinionRepo    secondary.OpinionRepository
	attendanceRepo secondary.AttendanceRepository
	voteRepo       secondary.VoteRepository
	roster         secondary.LegislatorRoster
	policy         coreattendance.QuorumPolicy
	tieBreaker     tally.TieBreaker
	events         secondary.EventWriter
	locks          *SittingLocks
	logger         *slog.Logger
	now            func() time.Time
}

// NewVotingService creates a new VotingService with injected dependencies.
func NewVotingService(
	sittingRepo secondary.SittingRepository,
	agendaRepo secondary.AgendaRepository,
	matterRepo secondary.MatterRepository,
	opinionRepo secondary.OpinionRepository,
	attendanceRepo secondary.AttendanceRepository,
	voteRepo secondary.VoteRepository,
	roster secondary.LegislatorRoster,
	policy coreattendance.QuorumPolicy,
	tieBreaker tally.TieBreaker,
	events secondary.EventWriter,
	locks *SittingLocks,
	logger *slog.Logger,
) *VotingServiceImpl {
	return &VotingServiceImpl{
		sittingRepo:    sittingRepo,
		agendaRepo:     agendaRepo,
		matterRepo:     matterRepo,
		opinionRepo:    opinionRepo,
		attendanceRepo: attendanceRepo,
		voteRepo:       voteRepo,
		roster:         roster,
		policy:         policy,
		tieBreaker:     tieBreaker,
		events:         events,
		locks:          locks,
		logger:         logger,
		now:            time.Now,
	}
}

// CheckEligibility runs the committee-opinion gate for an item. It never
// changes state.
func (s *VotingServiceImpl) CheckEligibility(ctx context.Context, itemID string) (*primary.Eligibility, error) {
	item, err := s.agendaRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	matter, err := s.matterRepo.GetByID(ctx, item.MatterID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.evaluateGate(ctx, matter)
	if err != nil {
		return nil, err
	}

	return &primary.Eligibility{
		ItemID:   item.ID,
		MatterID: matter.ID,
		Eligible: verdict.Eligible,
		Reason:   string(verdict.Reason),
		Pending:  verdict.Pending,
	}, nil
}

func (s *VotingServiceImpl) evaluateGate(ctx context.Context, matter *secondary.MatterRecord) (coreopinion.Eligibility, error) {
	records, err := s.opinionRepo.ListByMatter(ctx, matter.ID)
	if err != nil {
		return coreopinion.Eligibility{}, fmt.Errorf("failed to load opinions: %w", err)
	}

	opinions := make([]coreopinion.Summary, len(records))
	for i, r := range records {
		opinions[i] = coreopinion.Summary{ID: r.ID, Committee: r.Committee, Status: coreopinion.Status(r.Status)}
	}

	return coreopinion.IsVotingEligible(coreopinion.GateContext{
		MatterID:        matter.ID,
		RequiresOpinion: matter.RequiresOpinion,
		MatterStatus:    matter.Status,
		Opinions:        opinions,
	}), nil
}

// OpenVoting starts the vote on an item.
func (s *VotingServiceImpl) OpenVoting(ctx context.Context, itemID string) error {
	item, sitting, unlock, err := lockItemSitting(ctx, s.locks, s.agendaRepo, s.sittingRepo, itemID)
	if err != nil {
		return err
	}
	defer unlock()

	matter, err := s.matterRepo.GetByID(ctx, item.MatterID)
	if err != nil {
		return err
	}
	items, _, err := loadItemSummaries(ctx, s.agendaRepo, sitting.ID)
	if err != nil {
		return fmt.Errorf("failed to load agenda: %w", err)
	}
	verdict, err := s.evaluateGate(ctx, matter)
	if err != nil {
		return err
	}
	eligible, err := s.roster.EligibleForPeriod(ctx, sitting.PeriodID)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	present, err := s.attendanceRepo.CountPresent(ctx, sitting.ID)
	if err != nil {
		return fmt.Errorf("failed to count present legislators: %w", err)
	}

	guardCtx := tally.OpenVotingContext{
		ItemID:            item.ID,
		MatterID:          matter.ID,
		SittingStatus:     sitting.Status,
		SittingInProgress: coresitting.Status(sitting.Status) == coresitting.StatusInProgress,
		State:             coreagenda.TallyState(coreagenda.ItemStatus(item.Status)),
		RequiresVote:      matter.RequiresVote,
		OpenItemID:        coreagenda.OpenItem(items),
		Eligibility:       verdict,
		PresentCount:      present,
		RequiredQuorum:    s.policy.Required(len(eligible)),
	}
	if err := tally.CanOpenVoting(guardCtx).Error(); err != nil {
		if k := fault.KindOf(err); k == fault.OpinionPending || k == fault.InCommittee {
			// the gate's own message names the pending committees
			return verdict.Error(matter.ID)
		}
		return err
	}

	if err := s.agendaRepo.UpdateStatus(ctx, item.ID, string(coreagenda.ItemVotingInProgress)); err != nil {
		return fmt.Errorf("failed to open voting: %w", err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "open_voting", item.ID,
		fmt.Sprintf("%d present, %d required", present, guardCtx.RequiredQuorum))
	return nil
}

// CastVote records a legislator's vote, replacing any earlier choice.
func (s *VotingServiceImpl) CastVote(ctx context.Context, req primary.CastVoteRequest) error {
	choice, err := tally.ParseChoice(req.Choice)
	if err != nil {
		return fault.New(fault.Validation, "%v", err)
	}

	item, sitting, unlock, err := lockItemSitting(ctx, s.locks, s.agendaRepo, s.sittingRepo, req.ItemID)
	if err != nil {
		return err
	}
	defer unlock()

	marks, err := s.attendanceRepo.ListBySitting(ctx, sitting.ID)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}
	isPresent := false
	for _, m := range marks {
		if m.LegislatorID == req.LegislatorID && m.Status == string(coreattendance.StatusPresent) {
			isPresent = true
			break
		}
	}

	guardCtx := tally.CastVoteContext{
		ItemID:       item.ID,
		LegislatorID: req.LegislatorID,
		State:        coreagenda.TallyState(coreagenda.ItemStatus(item.Status)),
		IsPresent:    isPresent,
	}
	if err := tally.CanCastVote(guardCtx).Error(); err != nil {
		return err
	}

	vote := &secondary.VoteRecord{
		ItemID:       item.ID,
		LegislatorID: req.LegislatorID,
		Choice:       string(choice),
		CastAt:       s.now().UTC().Format(time.RFC3339),
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "vote", item.ID,
		fmt.Sprintf("%s %s", req.LegislatorID, choice))
	return nil
}

// PartialResult aggregates the votes cast so far. Votes of legislators who
// left after voting still count.
func (s *VotingServiceImpl) PartialResult(ctx context.Context, itemID string) (*primary.PartialResult, error) {
	item, err := s.agendaRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	counts, _, err := s.count(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	present, err := s.attendanceRepo.CountPresent(ctx, item.SittingID)
	if err != nil {
		return nil, fmt.Errorf("failed to count present legislators: %w", err)
	}

	result := &primary.PartialResult{
		ItemID:  item.ID,
		Yes:     counts.Yes,
		No:      counts.No,
		Abstain: counts.Abstain,
		Total:   counts.Total(),
		Present: present,
	}
	if pct, ok := tally.Share(counts.Yes, counts); ok {
		result.YesPct = pct
		result.NoPct, _ = tally.Share(counts.No, counts)
		result.PctDefined = true
	}
	return result, nil
}

// CloseVoting freezes the tally, marks the item voted and advances the
// matter through the tie-break policy. Closing twice fails with not_voting.
func (s *VotingServiceImpl) CloseVoting(ctx context.Context, itemID string) (*primary.VotingResult, error) {
	item, sitting, unlock, err := lockItemSitting(ctx, s.locks, s.agendaRepo, s.sittingRepo, itemID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	state := coreagenda.TallyState(coreagenda.ItemStatus(item.Status))
	if err := tally.CanCloseVoting(item.ID, state).Error(); err != nil {
		return nil, err
	}

	counts, voted, err := s.count(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	entries, _, err := rollCall(ctx, s.roster, s.attendanceRepo, sitting)
	if err != nil {
		return nil, err
	}
	missing := tally.Missing(coreattendance.PresentIDs(entries), voted)
	outcome := tally.Decide(counts)

	err = s.agendaRepo.RecordResult(ctx, item.ID, secondary.VoteResultRecord{
		Yes:     counts.Yes,
		No:      counts.No,
		Abstain: counts.Abstain,
		Outcome: string(outcome),
		VotedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record vote result: %w", err)
	}

	if len(missing) > 0 {
		s.logger.Warn("present legislators did not vote",
			"sitting", sitting.ID, "item", item.ID, "missing", missing)
	}

	result := &primary.VotingResult{
		ItemID:  item.ID,
		Yes:     counts.Yes,
		No:      counts.No,
		Abstain: counts.Abstain,
		Outcome: string(outcome),
		Missing: missing,
	}

	resolved := s.tieBreaker.Resolve(outcome)
	if next, ok := corematter.StatusAfterVote(resolved); ok {
		if err := s.matterRepo.UpdateStatus(ctx, item.MatterID, string(next)); err != nil {
			// the result is frozen; the matter can be corrected through its own service
			s.logger.Error("failed to advance matter after vote",
				"item", item.ID, "matter", item.MatterID, "status", next, "error", err)
		} else {
			result.MatterStatus = string(next)
		}
	} else {
		s.logger.Info("tie left unresolved by policy",
			"item", item.ID, "matter", item.MatterID, "policy", s.tieBreaker.Name())
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "close_voting", item.ID,
		fmt.Sprintf("%d yes, %d no, %d abstain: %s", counts.Yes, counts.No, counts.Abstain, outcome))
	return result, nil
}

// ListVotes lists the votes cast on an item.
func (s *VotingServiceImpl) ListVotes(ctx context.Context, itemID string) ([]*primary.Vote, error) {
	if _, err := s.agendaRepo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	records, err := s.voteRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	votes := make([]*primary.Vote, len(records))
	for i, r := range records {
		votes[i] = &primary.Vote{ItemID: r.ItemID, LegislatorID: r.LegislatorID, Choice: r.Choice, CastAt: r.CastAt}
	}
	return votes, nil
}

func (s *VotingServiceImpl) count(ctx context.Context, itemID string) (tally.Counts, map[string]bool, error) {
	records, err := s.voteRepo.ListByItem(ctx, itemID)
	if err != nil {
		return tally.Counts{}, nil, fmt.Errorf("failed to load votes: %w", err)
	}

	choices := make([]tally.Choice, len(records))
	voted := make(map[string]bool, len(records))
	for i, r := range records {
		choices[i] = tally.Choice(r.Choice)
		voted[r.LegislatorID] = true
	}
	return tally.Count(choices), voted, nil
}

var _ primary.VotingService = (*VotingServiceImpl)(nil)

package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/example/plenario/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockSittingService implements primary.SittingService for testing
type mockSittingService struct {
	getSittingFn   func(ctx context.Context, sittingID string) (*primary.Sitting, error)
	listSittingsFn func(ctx context.Context, filters primary.SittingFilters) ([]*primary.Sitting, error)
	closeSittingFn func(ctx context.Context, sittingID string) (*primary.CloseSittingResponse, error)
	transitionErr  error
	events         []*primary.SittingEvent

	// Track calls for verification
	lastScheduleReq primary.ScheduleSittingRequest
	lastReason      string
	calls           []string
}

func (m *mockSittingService) ScheduleSitting(ctx context.Context, req primary.ScheduleSittingRequest) (*primary.ScheduleSittingResponse, error) {
	m.lastScheduleReq = req
	return &primary.ScheduleSittingResponse{
		SittingID: "SES-001",
		Sitting:   &primary.Sitting{ID: "SES-001", Kind: req.Kind, ScheduledAt: req.ScheduledAt, Status: "scheduled"},
	}, nil
}

func (m *mockSittingService) GetSitting(ctx context.Context, sittingID string) (*primary.Sitting, error) {
	if m.getSittingFn != nil {
		return m.getSittingFn(ctx, sittingID)
	}
	return &primary.Sitting{ID: sittingID, Kind: "ordinary", Status: "scheduled", PeriodID: "PER-001"}, nil
}

func (m *mockSittingService) ListSittings(ctx context.Context, filters primary.SittingFilters) ([]*primary.Sitting, error) {
	if m.listSittingsFn != nil {
		return m.listSittingsFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockSittingService) DeleteSitting(ctx context.Context, sittingID string) error {
	m.calls = append(m.calls, "delete "+sittingID)
	return m.transitionErr
}

func (m *mockSittingService) StartSitting(ctx context.Context, sittingID string) error {
	m.calls = append(m.calls, "start "+sittingID)
	return m.transitionErr
}

func (m *mockSittingService) SuspendSitting(ctx context.Context, sittingID string) error {
	m.calls = append(m.calls, "suspend "+sittingID)
	return m.transitionErr
}

func (m *mockSittingService) ResumeSitting(ctx context.Context, sittingID string) error {
	m.calls = append(m.calls, "resume "+sittingID)
	return m.transitionErr
}

func (m *mockSittingService) CloseSitting(ctx context.Context, sittingID string) (*primary.CloseSittingResponse, error) {
	if m.closeSittingFn != nil {
		return m.closeSittingFn(ctx, sittingID)
	}
	return &primary.CloseSittingResponse{}, nil
}

func (m *mockSittingService) CancelSitting(ctx context.Context, sittingID, reason string) error {
	m.lastReason = reason
	m.calls = append(m.calls, "cancel "+sittingID)
	return m.transitionErr
}

func (m *mockSittingService) PostponeSitting(ctx context.Context, sittingID, reason string) error {
	m.lastReason = reason
	m.calls = append(m.calls, "postpone "+sittingID)
	return m.transitionErr
}

func (m *mockSittingService) GetMinutes(ctx context.Context, sittingID string) (*primary.Minutes, error) {
	return &primary.Minutes{Ref: "ref-1", SittingID: sittingID, Body: "# Ata da sessão " + sittingID}, nil
}

func (m *mockSittingService) SittingLog(ctx context.Context, sittingID string, limit int) ([]*primary.SittingEvent, error) {
	return m.events, nil
}

// mockAgendaService implements primary.AgendaService for testing
type mockAgendaService struct {
	agenda *primary.Agenda
	err    error

	lastReorder primary.ReorderRequest
	calls       []string
}

func (m *mockAgendaService) ListEligibleMatters(ctx context.Context, sittingID string) ([]*primary.Matter, error) {
	return []*primary.Matter{{ID: "MAT-004", Kind: "bill", Status: "filed", Title: "Denomina logradouro"}}, nil
}

func (m *mockAgendaService) AddItem(ctx context.Context, req primary.AddItemRequest) (*primary.AgendaItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &primary.AgendaItem{ID: "ITEM-001", SittingID: req.SittingID, MatterID: req.MatterID, Section: req.Section, Position: 1}, nil
}

func (m *mockAgendaService) RemoveItem(ctx context.Context, itemID string) error {
	m.calls = append(m.calls, "remove "+itemID)
	return m.err
}

func (m *mockAgendaService) Reorder(ctx context.Context, req primary.ReorderRequest) error {
	m.lastReorder = req
	return m.err
}

func (m *mockAgendaService) ChangeSection(ctx context.Context, itemID, section string) error {
	m.calls = append(m.calls, "move "+itemID+" "+section)
	return m.err
}

func (m *mockAgendaService) Publish(ctx context.Context, sittingID string) error {
	m.calls = append(m.calls, "publish "+sittingID)
	return m.err
}

func (m *mockAgendaService) Unpublish(ctx context.Context, sittingID string) error {
	m.calls = append(m.calls, "unpublish "+sittingID)
	return m.err
}

func (m *mockAgendaService) GetAgenda(ctx context.Context, sittingID string) (*primary.Agenda, error) {
	if m.agenda != nil {
		return m.agenda, nil
	}
	return &primary.Agenda{SittingID: sittingID}, nil
}

func (m *mockAgendaService) GetItem(ctx context.Context, itemID string) (*primary.AgendaItem, error) {
	return &primary.AgendaItem{ID: itemID}, nil
}

func (m *mockAgendaService) MarkRead(ctx context.Context, itemID string) error {
	m.calls = append(m.calls, "read "+itemID)
	return m.err
}

func (m *mockAgendaService) PostponeItem(ctx context.Context, itemID string) error {
	m.calls = append(m.calls, "postpone "+itemID)
	return m.err
}

func (m *mockAgendaService) WithdrawItem(ctx context.Context, itemID string) error {
	m.calls = append(m.calls, "withdraw "+itemID)
	return m.err
}

// mockAttendanceService implements primary.AttendanceService for testing
type mockAttendanceService struct {
	entries []*primary.AttendanceEntry
	quorum  primary.QuorumStatus
	err     error

	lastRecordReq primary.RecordAttendanceRequest
}

func (m *mockAttendanceService) RecordAttendance(ctx context.Context, req primary.RecordAttendanceRequest) error {
	m.lastRecordReq = req
	return m.err
}

func (m *mockAttendanceService) GetAttendance(ctx context.Context, sittingID string) ([]*primary.AttendanceEntry, error) {
	return m.entries, m.err
}

func (m *mockAttendanceService) PresentCount(ctx context.Context, sittingID string) (int, error) {
	return m.quorum.Present, m.err
}

func (m *mockAttendanceService) QuorumStatus(ctx context.Context, sittingID string) (*primary.QuorumStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	q := m.quorum
	q.SittingID = sittingID
	return &q, nil
}

// mockVotingService implements primary.VotingService for testing
type mockVotingService struct {
	eligibility *primary.Eligibility
	partial     *primary.PartialResult
	result      *primary.VotingResult
	votes       []*primary.Vote
	err         error

	lastCastReq primary.CastVoteRequest
	opened      []string
}

func (m *mockVotingService) CheckEligibility(ctx context.Context, itemID string) (*primary.Eligibility, error) {
	return m.eligibility, m.err
}

func (m *mockVotingService) OpenVoting(ctx context.Context, itemID string) error {
	m.opened = append(m.opened, itemID)
	return m.err
}

func (m *mockVotingService) CastVote(ctx context.Context, req primary.CastVoteRequest) error {
	m.lastCastReq = req
	return m.err
}

func (m *mockVotingService) PartialResult(ctx context.Context, itemID string) (*primary.PartialResult, error) {
	return m.partial, m.err
}

func (m *mockVotingService) CloseVoting(ctx context.Context, itemID string) (*primary.VotingResult, error) {
	return m.result, m.err
}

func (m *mockVotingService) ListVotes(ctx context.Context, itemID string) ([]*primary.Vote, error) {
	return m.votes, m.err
}

// mockMatterService implements primary.MatterService for testing
type mockMatterService struct {
	matters []*primary.Matter
	err     error

	lastFileReq primary.FileMatterRequest
	lastStatus  string
}

func (m *mockMatterService) FileMatter(ctx context.Context, req primary.FileMatterRequest) (*primary.Matter, error) {
	m.lastFileReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &primary.Matter{ID: "MAT-006", Kind: req.Kind, Title: req.Title, Status: "filed", RequiresVote: true}, nil
}

func (m *mockMatterService) GetMatter(ctx context.Context, matterID string) (*primary.Matter, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &primary.Matter{ID: matterID, Kind: "bill", Title: "Altera o código de posturas", Status: "in_committee", RequiresVote: true, RequiresOpinion: true}, nil
}

func (m *mockMatterService) ListMatters(ctx context.Context, filters primary.MatterFilters) ([]*primary.Matter, error) {
	return m.matters, m.err
}

func (m *mockMatterService) SetMatterStatus(ctx context.Context, matterID, status string) error {
	m.lastStatus = matterID + " " + status
	return m.err
}

// mockOpinionService implements primary.OpinionService for testing
type mockOpinionService struct {
	opinions []*primary.Opinion
	err      error
	calls    []string
}

func (m *mockOpinionService) RequestOpinion(ctx context.Context, matterID, committee string) (*primary.Opinion, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &primary.Opinion{ID: "OP-004", MatterID: matterID, Committee: committee, Status: "pending"}, nil
}

func (m *mockOpinionService) IssueOpinion(ctx context.Context, opinionID string) error {
	m.calls = append(m.calls, "issue "+opinionID)
	return m.err
}

func (m *mockOpinionService) WaiveOpinion(ctx context.Context, opinionID string) error {
	m.calls = append(m.calls, "waive "+opinionID)
	return m.err
}

func (m *mockOpinionService) ListOpinions(ctx context.Context, matterID string) ([]*primary.Opinion, error) {
	return m.opinions, m.err
}

// mockRosterService implements primary.RosterService for testing
type mockRosterService struct {
	legislators []*primary.Legislator
	roster      []*primary.Legislator
	err         error

	membership string
}

func (m *mockRosterService) CreatePeriod(ctx context.Context, req primary.CreatePeriodRequest) (*primary.Period, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &primary.Period{ID: "PER-002", Name: req.Name, StartsOn: req.StartsOn, EndsOn: req.EndsOn}, nil
}

func (m *mockRosterService) ListPeriods(ctx context.Context) ([]*primary.Period, error) {
	return []*primary.Period{{ID: "PER-001", Name: "19ª Legislatura", StartsOn: "2025-01-01", EndsOn: "2028-12-31"}}, m.err
}

func (m *mockRosterService) RegisterLegislator(ctx context.Context, name, party string) (*primary.Legislator, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &primary.Legislator{ID: "LEG-010", Name: name, Party: party}, nil
}

func (m *mockRosterService) ListLegislators(ctx context.Context) ([]*primary.Legislator, error) {
	return m.legislators, m.err
}

func (m *mockRosterService) SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error {
	m.membership = fmt.Sprintf("%s %s %v", periodID, legislatorID, active)
	return m.err
}

func (m *mockRosterService) Roster(ctx context.Context, periodID string) ([]*primary.Legislator, error) {
	return m.roster, m.err
}

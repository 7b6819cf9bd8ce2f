package api

import (
	"context"

	"github.com/example/plenario/internal/ctxutil"
	"github.com/example/plenario/internal/ports/primary"
)

// recorder captures calls across every stub service.
type recorder struct {
	err    error
	calls  []string
	actors []string
}

func (r *recorder) record(ctx context.Context, call string) error {
	r.calls = append(r.calls, call)
	r.actors = append(r.actors, ctxutil.ActorFromContext(ctx))
	return r.err
}

type stubSittings struct {
	*recorder
	lastSchedule primary.ScheduleSittingRequest
	lastFilters  primary.SittingFilters
	lastReason   string
	lastLimit    int
}

func (s *stubSittings) ScheduleSitting(ctx context.Context, req primary.ScheduleSittingRequest) (*primary.ScheduleSittingResponse, error) {
	s.lastSchedule = req
	if err := s.record(ctx, "schedule"); err != nil {
		return nil, err
	}
	return &primary.ScheduleSittingResponse{
		SittingID: "SES-001",
		Sitting:   &primary.Sitting{ID: "SES-001", Kind: req.Kind, ScheduledAt: req.ScheduledAt, Status: "scheduled"},
	}, nil
}

func (s *stubSittings) GetSitting(ctx context.Context, id string) (*primary.Sitting, error) {
	if err := s.record(ctx, "get "+id); err != nil {
		return nil, err
	}
	return &primary.Sitting{ID: id, Status: "in_progress"}, nil
}

func (s *stubSittings) ListSittings(ctx context.Context, filters primary.SittingFilters) ([]*primary.Sitting, error) {
	s.lastFilters = filters
	return []*primary.Sitting{{ID: "SES-001"}, {ID: "SES-002"}}, s.record(ctx, "list")
}

func (s *stubSittings) DeleteSitting(ctx context.Context, id string) error {
	return s.record(ctx, "delete "+id)
}

func (s *stubSittings) StartSitting(ctx context.Context, id string) error {
	return s.record(ctx, "start "+id)
}

func (s *stubSittings) SuspendSitting(ctx context.Context, id string) error {
	return s.record(ctx, "suspend "+id)
}

func (s *stubSittings) ResumeSitting(ctx context.Context, id string) error {
	return s.record(ctx, "resume "+id)
}

func (s *stubSittings) CloseSitting(ctx context.Context, id string) (*primary.CloseSittingResponse, error) {
	if err := s.record(ctx, "close "+id); err != nil {
		return nil, err
	}
	return &primary.CloseSittingResponse{MinutesRef: "ref-1", NextSittingID: "SES-002"}, nil
}

func (s *stubSittings) CancelSitting(ctx context.Context, id, reason string) error {
	s.lastReason = reason
	return s.record(ctx, "cancel "+id)
}

func (s *stubSittings) PostponeSitting(ctx context.Context, id, reason string) error {
	s.lastReason = reason
	return s.record(ctx, "postpone "+id)
}

func (s *stubSittings) GetMinutes(ctx context.Context, id string) (*primary.Minutes, error) {
	if err := s.record(ctx, "minutes "+id); err != nil {
		return nil, err
	}
	return &primary.Minutes{Ref: "ref-1", SittingID: id, Body: "# Ata da sessão " + id}, nil
}

func (s *stubSittings) SittingLog(ctx context.Context, id string, limit int) ([]*primary.SittingEvent, error) {
	s.lastLimit = limit
	return nil, s.record(ctx, "log "+id)
}

type stubAgenda struct {
	*recorder
	lastAdd     primary.AddItemRequest
	lastReorder primary.ReorderRequest
}

func (s *stubAgenda) ListEligibleMatters(ctx context.Context, id string) ([]*primary.Matter, error) {
	return []*primary.Matter{{ID: "MAT-004"}}, s.record(ctx, "eligible "+id)
}

func (s *stubAgenda) AddItem(ctx context.Context, req primary.AddItemRequest) (*primary.AgendaItem, error) {
	s.lastAdd = req
	if err := s.record(ctx, "add"); err != nil {
		return nil, err
	}
	return &primary.AgendaItem{ID: "ITEM-001", SittingID: req.SittingID, MatterID: req.MatterID, Section: req.Section, Position: 1}, nil
}

func (s *stubAgenda) RemoveItem(ctx context.Context, id string) error {
	return s.record(ctx, "remove "+id)
}

func (s *stubAgenda) Reorder(ctx context.Context, req primary.ReorderRequest) error {
	s.lastReorder = req
	return s.record(ctx, "reorder")
}

func (s *stubAgenda) ChangeSection(ctx context.Context, id, section string) error {
	return s.record(ctx, "move "+id+" "+section)
}

func (s *stubAgenda) Publish(ctx context.Context, id string) error {
	return s.record(ctx, "publish "+id)
}

func (s *stubAgenda) Unpublish(ctx context.Context, id string) error {
	return s.record(ctx, "unpublish "+id)
}

func (s *stubAgenda) GetAgenda(ctx context.Context, id string) (*primary.Agenda, error) {
	return &primary.Agenda{SittingID: id}, s.record(ctx, "agenda "+id)
}

func (s *stubAgenda) GetItem(ctx context.Context, id string) (*primary.AgendaItem, error) {
	return &primary.AgendaItem{ID: id}, s.record(ctx, "item "+id)
}

func (s *stubAgenda) MarkRead(ctx context.Context, id string) error {
	return s.record(ctx, "read "+id)
}

func (s *stubAgenda) PostponeItem(ctx context.Context, id string) error {
	return s.record(ctx, "postpone "+id)
}

func (s *stubAgenda) WithdrawItem(ctx context.Context, id string) error {
	return s.record(ctx, "withdraw "+id)
}

type stubAttendance struct {
	*recorder
	lastRecord primary.RecordAttendanceRequest
}

func (s *stubAttendance) RecordAttendance(ctx context.Context, req primary.RecordAttendanceRequest) error {
	s.lastRecord = req
	return s.record(ctx, "mark")
}

func (s *stubAttendance) GetAttendance(ctx context.Context, id string) ([]*primary.AttendanceEntry, error) {
	return nil, s.record(ctx, "attendance "+id)
}

func (s *stubAttendance) PresentCount(ctx context.Context, id string) (int, error) {
	return 5, s.record(ctx, "count "+id)
}

func (s *stubAttendance) QuorumStatus(ctx context.Context, id string) (*primary.QuorumStatus, error) {
	if err := s.record(ctx, "quorum "+id); err != nil {
		return nil, err
	}
	return &primary.QuorumStatus{SittingID: id, Present: 5, Eligible: 9, Required: 5, Met: true, Rule: "absolute majority"}, nil
}

type stubVoting struct {
	*recorder
	lastCast primary.CastVoteRequest
}

func (s *stubVoting) CheckEligibility(ctx context.Context, id string) (*primary.Eligibility, error) {
	return &primary.Eligibility{ItemID: id, Eligible: true}, s.record(ctx, "check "+id)
}

func (s *stubVoting) OpenVoting(ctx context.Context, id string) error {
	return s.record(ctx, "open "+id)
}

func (s *stubVoting) CastVote(ctx context.Context, req primary.CastVoteRequest) error {
	s.lastCast = req
	return s.record(ctx, "cast")
}

func (s *stubVoting) PartialResult(ctx context.Context, id string) (*primary.PartialResult, error) {
	return &primary.PartialResult{ItemID: id, Yes: 3, Total: 3, Present: 5, YesPct: 100, PctDefined: true}, s.record(ctx, "partial "+id)
}

func (s *stubVoting) CloseVoting(ctx context.Context, id string) (*primary.VotingResult, error) {
	if err := s.record(ctx, "closevote "+id); err != nil {
		return nil, err
	}
	return &primary.VotingResult{ItemID: id, Yes: 5, Outcome: "approved", MatterStatus: "approved"}, nil
}

func (s *stubVoting) ListVotes(ctx context.Context, id string) ([]*primary.Vote, error) {
	return nil, s.record(ctx, "votes "+id)
}

type stubMatters struct {
	*recorder
	lastFile    primary.FileMatterRequest
	lastFilters primary.MatterFilters
}

func (s *stubMatters) FileMatter(ctx context.Context, req primary.FileMatterRequest) (*primary.Matter, error) {
	s.lastFile = req
	if err := s.record(ctx, "file"); err != nil {
		return nil, err
	}
	return &primary.Matter{ID: "MAT-001", Kind: req.Kind, Title: req.Title, Status: "filed"}, nil
}

func (s *stubMatters) GetMatter(ctx context.Context, id string) (*primary.Matter, error) {
	return &primary.Matter{ID: id}, s.record(ctx, "matter "+id)
}

func (s *stubMatters) ListMatters(ctx context.Context, filters primary.MatterFilters) ([]*primary.Matter, error) {
	s.lastFilters = filters
	return nil, s.record(ctx, "matters")
}

func (s *stubMatters) SetMatterStatus(ctx context.Context, id, status string) error {
	return s.record(ctx, "status "+id+" "+status)
}

type stubOpinions struct {
	*recorder
}

func (s *stubOpinions) RequestOpinion(ctx context.Context, matterID, committee string) (*primary.Opinion, error) {
	if err := s.record(ctx, "request "+matterID+" "+committee); err != nil {
		return nil, err
	}
	return &primary.Opinion{ID: "OP-001", MatterID: matterID, Committee: committee, Status: "pending"}, nil
}

func (s *stubOpinions) IssueOpinion(ctx context.Context, id string) error {
	return s.record(ctx, "issue "+id)
}

func (s *stubOpinions) WaiveOpinion(ctx context.Context, id string) error {
	return s.record(ctx, "waive "+id)
}

func (s *stubOpinions) ListOpinions(ctx context.Context, matterID string) ([]*primary.Opinion, error) {
	return nil, s.record(ctx, "opinions "+matterID)
}

type stubRoster struct {
	*recorder
	lastPeriod primary.CreatePeriodRequest
}

func (s *stubRoster) CreatePeriod(ctx context.Context, req primary.CreatePeriodRequest) (*primary.Period, error) {
	s.lastPeriod = req
	return &primary.Period{ID: "PER-002", Name: req.Name}, s.record(ctx, "period")
}

func (s *stubRoster) ListPeriods(ctx context.Context) ([]*primary.Period, error) {
	return nil, s.record(ctx, "periods")
}

func (s *stubRoster) RegisterLegislator(ctx context.Context, name, party string) (*primary.Legislator, error) {
	return &primary.Legislator{ID: "LEG-010", Name: name, Party: party}, s.record(ctx, "register "+name)
}

func (s *stubRoster) ListLegislators(ctx context.Context) ([]*primary.Legislator, error) {
	return nil, s.record(ctx, "legislators")
}

func (s *stubRoster) SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error {
	call := "leave "
	if active {
		call = "join "
	}
	return s.record(ctx, call+periodID+" "+legislatorID)
}

func (s *stubRoster) Roster(ctx context.Context, periodID string) ([]*primary.Legislator, error) {
	return nil, s.record(ctx, "roster "+periodID)
}

type stubs struct {
	rec        *recorder
	sittings   *stubSittings
	agenda     *stubAgenda
	attendance *stubAttendance
	voting     *stubVoting
	matters    *stubMatters
	opinions   *stubOpinions
	roster     *stubRoster
}

func newStubs() *stubs {
	rec := &recorder{}
	return &stubs{
		rec:        rec,
		sittings:   &stubSittings{recorder: rec},
		agenda:     &stubAgenda{recorder: rec},
		attendance: &stubAttendance{recorder: rec},
		voting:     &stubVoting{recorder: rec},
		matters:    &stubMatters{recorder: rec},
		opinions:   &stubOpinions{recorder: rec},
		roster:     &stubRoster{recorder: rec},
	}
}

func (s *stubs) services() Services {
	return Services{
		Sittings:   s.sittings,
		Agenda:     s.agenda,
		Attendance: s.attendance,
		Voting:     s.voting,
		Matters:    s.matters,
		Opinions:   s.opinions,
		Roster:     s.roster,
	}
}

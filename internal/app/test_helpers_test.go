package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	coreagenda "github.com/example/plenario/internal/core/agenda"
	coreattendance "github.com/example/plenario/internal/core/attendance"
	"github.com/example/plenario/internal/core/fault"
	coresitting "github.com/example/plenario/internal/core/sitting"
	"github.com/example/plenario/internal/core/tally"
	"github.com/example/plenario/internal/ports/secondary"
)

// ============================================================================
// In-memory chamber shared by the service tests
// ============================================================================

// chamber wires every service to one set of in-memory repositories.
type chamber struct {
	sittings    *mockSittingRepository
	agenda      *mockAgendaRepository
	attendance  *mockAttendanceRepository
	votes       *mockVoteRepository
	matters     *mockMatterRepository
	opinions    *mockOpinionRepository
	legislators *mockLegislatorRepository
	periods     *mockPeriodRepository
	minutes     *mockMinutesGenerator
	events      *mockEventWriter

	locks *SittingLocks

	sittingSvc    *SittingServiceImpl
	agendaSvc     *AgendaServiceImpl
	attendanceSvc *AttendanceServiceImpl
	votingSvc     *VotingServiceImpl
	matterSvc     *MatterServiceImpl
	opinionSvc    *OpinionServiceImpl
	rosterSvc     *RosterServiceImpl
}

var fixedNow = time.Date(2026, time.March, 10, 19, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newChamber builds a chamber whose period PER-001 seats nine legislators
// (LEG-001..LEG-009) with a fixed quorum of five.
func newChamber() *chamber {
	c := &chamber{
		sittings:    newMockSittingRepository(),
		attendance:  newMockAttendanceRepository(),
		votes:       newMockVoteRepository(),
		matters:     newMockMatterRepository(),
		opinions:    newMockOpinionRepository(),
		legislators: newMockLegislatorRepository(),
		minutes:     &mockMinutesGenerator{ref: "minutes-ref-1"},
		events:      &mockEventWriter{},
		locks:       NewSittingLocks(),
	}
	c.agenda = newMockAgendaRepository(c.sittings)
	c.periods = newMockPeriodRepository(c.sittings)

	c.periods.periods["PER-001"] = &secondary.PeriodRecord{ID: "PER-001", Name: "2025-2028", StartsOn: "2025-01-01", EndsOn: "2028-12-31"}
	for i := 1; i <= 9; i++ {
		id := fmt.Sprintf("LEG-%03d", i)
		c.legislators.legislators[id] = &secondary.LegislatorRecord{ID: id, Name: "Vereador " + id}
		c.legislators.members["PER-001"] = append(c.legislators.members["PER-001"], id)
	}

	logger := discardLogger()
	policy := coreattendance.FixedQuorum{Minimum: 5}

	c.sittingSvc = NewSittingService(SittingDeps{
		SittingRepo:    c.sittings,
		AgendaRepo:     c.agenda,
		AttendanceRepo: c.attendance,
		MatterRepo:     c.matters,
		PeriodRepo:     c.periods,
		Roster:         c.legislators,
		Minutes:        c.minutes,
		Events:         c.events,
		Locks:          c.locks,
		Logger:         logger,
	})
	c.sittingSvc.now = func() time.Time { return fixedNow }
	c.agendaSvc = NewAgendaService(c.sittings, c.agenda, c.matters, c.events, c.locks, logger)
	c.attendanceSvc = NewAttendanceService(c.sittings, c.attendance, c.legislators, policy, c.events, c.locks, logger)
	c.attendanceSvc.now = func() time.Time { return fixedNow }
	c.votingSvc = NewVotingService(c.sittings, c.agenda, c.matters, c.opinions, c.attendance, c.votes,
		c.legislators, policy, tally.TieRejects{}, c.events, c.locks, logger)
	c.votingSvc.now = func() time.Time { return fixedNow }
	c.matterSvc = NewMatterService(c.matters, c.locks, logger)
	c.opinionSvc = NewOpinionService(c.opinions, c.matters, c.locks)
	c.rosterSvc = NewRosterService(c.periods, c.legislators, c.locks)
	return c
}

// addSitting stores a scheduled sitting directly.
func (c *chamber) addSitting(id, scheduledAt string) {
	c.sittings.sittings[id] = &secondary.SittingRecord{
		ID:          id,
		PeriodID:    "PER-001",
		Kind:        string(coresitting.KindOrdinary),
		ScheduledAt: scheduledAt,
		Status:      string(coresitting.StatusScheduled),
	}
}

// addMatter stores a filed matter directly.
func (c *chamber) addMatter(id string, requiresVote, requiresOpinion bool) {
	c.matters.matters[id] = &secondary.MatterRecord{
		ID:              id,
		Kind:            "bill",
		Title:           "Matter " + id,
		Status:          "filed",
		RequiresVote:    requiresVote,
		RequiresOpinion: requiresOpinion,
	}
}

// addItem stores an agenda item directly, bypassing the agenda guards.
func (c *chamber) addItem(id, sittingID, matterID string, position int) {
	c.agenda.items[id] = &secondary.AgendaItemRecord{
		ID:        id,
		SittingID: sittingID,
		MatterID:  matterID,
		Section:   string(coreagenda.SectionOrdemDoDia),
		Position:  position,
		Status:    string(coreagenda.ItemPending),
	}
}

// markPresent records legislators LEG-001..LEG-n present.
func (c *chamber) markPresent(sittingID string, n int) {
	for i := 1; i <= n; i++ {
		c.attendance.set(sittingID, fmt.Sprintf("LEG-%03d", i), string(coreattendance.StatusPresent))
	}
}

// highestSuffix returns the largest numeric suffix among ids with prefix.
func highestSuffix[V any](m map[string]V, prefix string) int {
	highest := 0
	for id := range m {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(id, prefix), "%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockSittingRepository implements secondary.SittingRepository for testing.
type mockSittingRepository struct {
	mu               sync.Mutex
	sittings         map[string]*secondary.SittingRecord
	setMinutesRefErr error
}

func newMockSittingRepository() *mockSittingRepository {
	return &mockSittingRepository{sittings: make(map[string]*secondary.SittingRecord)}
}

func (m *mockSittingRepository) Create(ctx context.Context, sitting *secondary.SittingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *sitting
	c.CreatedAt = fixedNow.Format(time.RFC3339)
	m.sittings[sitting.ID] = &c
	return nil
}

func (m *mockSittingRepository) GetByID(ctx context.Context, id string) (*secondary.SittingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sittings[id]
	if !ok {
		return nil, fault.NotFoundf("sitting %s not found", id)
	}
	c := *s
	return &c, nil
}

func (m *mockSittingRepository) List(ctx context.Context, filters secondary.SittingFilters) ([]*secondary.SittingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.SittingRecord
	for _, s := range m.sittings {
		if filters.PeriodID != "" && s.PeriodID != filters.PeriodID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		c := *s
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduledAt < result[j].ScheduledAt })
	return result, nil
}

func (m *mockSittingRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sittings[id]; !ok {
		return fault.NotFoundf("sitting %s not found", id)
	}
	delete(m.sittings, id)
	return nil
}

func (m *mockSittingRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return coresitting.GenerateSittingID(highestSuffix(m.sittings, "SES-")), nil
}

func (m *mockSittingRepository) UpdateStatus(ctx context.Context, id string, update secondary.SittingStatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sittings[id]
	if !ok {
		return fault.NotFoundf("sitting %s not found", id)
	}
	s.Status = update.Status
	if update.StatusReason != "" {
		s.StatusReason = update.StatusReason
	}
	if update.StartedAt != "" {
		s.StartedAt = update.StartedAt
	}
	if update.ClosedAt != "" {
		s.ClosedAt = update.ClosedAt
	}
	return nil
}

func (m *mockSittingRepository) SetAgendaPublished(ctx context.Context, id string, published bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sittings[id]
	if !ok {
		return fault.NotFoundf("sitting %s not found", id)
	}
	s.AgendaPublished = published
	return nil
}

func (m *mockSittingRepository) SetMinutesRef(ctx context.Context, id, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setMinutesRefErr != nil {
		return m.setMinutesRefErr
	}
	s, ok := m.sittings[id]
	if !ok {
		return fault.NotFoundf("sitting %s not found", id)
	}
	s.MinutesRef = ref
	return nil
}

// mockAgendaRepository implements secondary.AgendaRepository for testing.
type mockAgendaRepository struct {
	mu        sync.Mutex
	items     map[string]*secondary.AgendaItemRecord
	sittings  *mockSittingRepository
	createErr error
}

func newMockAgendaRepository(sittings *mockSittingRepository) *mockAgendaRepository {
	return &mockAgendaRepository{items: make(map[string]*secondary.AgendaItemRecord), sittings: sittings}
}

func (m *mockAgendaRepository) Create(ctx context.Context, item *secondary.AgendaItemRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, it := range m.items {
		if it.SittingID == item.SittingID && it.MatterID == item.MatterID {
			return errors.New("UNIQUE constraint failed: agenda_items.sitting_id, agenda_items.matter_id")
		}
	}
	c := *item
	m.items[item.ID] = &c
	return nil
}

func (m *mockAgendaRepository) GetByID(ctx context.Context, id string) (*secondary.AgendaItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, fault.NotFoundf("agenda item %s not found", id)
	}
	c := *it
	return &c, nil
}

func (m *mockAgendaRepository) ListBySitting(ctx context.Context, sittingID string) ([]*secondary.AgendaItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.AgendaItemRecord
	for _, it := range m.items {
		if it.SittingID == sittingID {
			c := *it
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ri := coreagenda.SectionRank(coreagenda.Section(result[i].Section))
		rj := coreagenda.SectionRank(coreagenda.Section(result[j].Section))
		if ri != rj {
			return ri < rj
		}
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (m *mockAgendaRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fault.NotFoundf("agenda item %s not found", id)
	}
	delete(m.items, id)
	return nil
}

func (m *mockAgendaRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return coreagenda.GenerateItemID(highestSuffix(m.items, "ITEM-")), nil
}

func (m *mockAgendaRepository) SetPositions(ctx context.Context, sittingID, section string, orderedIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, id := range orderedIDs {
		it, ok := m.items[id]
		if !ok || it.SittingID != sittingID {
			return fault.NotFoundf("agenda item %s not found in sitting %s", id, sittingID)
		}
		it.Section = section
		it.Position = i + 1
	}
	return nil
}

func (m *mockAgendaRepository) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return fault.NotFoundf("agenda item %s not found", id)
	}
	if status == string(coreagenda.ItemVotingInProgress) {
		for _, other := range m.items {
			if other.SittingID == it.SittingID && other.ID != id && other.Status == status {
				return errors.New("UNIQUE constraint failed: agenda_items.sitting_id")
			}
		}
	}
	it.Status = status
	return nil
}

func (m *mockAgendaRepository) RecordResult(ctx context.Context, id string, result secondary.VoteResultRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return fault.NotFoundf("agenda item %s not found", id)
	}
	if it.Status != string(coreagenda.ItemVotingInProgress) {
		return fault.New(fault.NotVoting, "item %s is not open for voting", id)
	}
	it.Status = string(coreagenda.ItemVoted)
	it.Yes, it.No, it.Abstain = result.Yes, result.No, result.Abstain
	it.Outcome = result.Outcome
	it.VotedAt = result.VotedAt
	return nil
}

func (m *mockAgendaRepository) ActiveSittingsByMatter(ctx context.Context, excludeSittingID string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sittings.mu.Lock()
	defer m.sittings.mu.Unlock()
	held := make(map[string]string)
	for _, it := range m.items {
		if it.SittingID == excludeSittingID {
			continue
		}
		s, ok := m.sittings.sittings[it.SittingID]
		if ok && coresitting.IsActive(coresitting.Status(s.Status)) {
			held[it.MatterID] = it.SittingID
		}
	}
	return held, nil
}

// mockAttendanceRepository implements secondary.AttendanceRepository for testing.
type mockAttendanceRepository struct {
	mu      sync.Mutex
	marks   map[string]map[string]*secondary.AttendanceRecord
	seedErr error
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{marks: make(map[string]map[string]*secondary.AttendanceRecord)}
}

func (m *mockAttendanceRepository) set(sittingID, legislatorID, status string) {
	m.Upsert(context.Background(), &secondary.AttendanceRecord{
		SittingID:    sittingID,
		LegislatorID: legislatorID,
		Status:       status,
		MarkedAt:     fixedNow.Format(time.RFC3339),
	})
}

func (m *mockAttendanceRepository) Upsert(ctx context.Context, record *secondary.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.marks[record.SittingID] == nil {
		m.marks[record.SittingID] = make(map[string]*secondary.AttendanceRecord)
	}
	c := *record
	m.marks[record.SittingID][record.LegislatorID] = &c
	return nil
}

func (m *mockAttendanceRepository) ListBySitting(ctx context.Context, sittingID string) ([]*secondary.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.AttendanceRecord
	for _, r := range m.marks[sittingID] {
		c := *r
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LegislatorID < result[j].LegislatorID })
	return result, nil
}

func (m *mockAttendanceRepository) Seed(ctx context.Context, sittingID string, legislatorIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seedErr != nil {
		return m.seedErr
	}
	for _, id := range legislatorIDs {
		if _, ok := m.marks[sittingID][id]; ok {
			continue
		}
		if m.marks[sittingID] == nil {
			m.marks[sittingID] = make(map[string]*secondary.AttendanceRecord)
		}
		m.marks[sittingID][id] = &secondary.AttendanceRecord{
			SittingID:    sittingID,
			LegislatorID: id,
			Status:       string(coreattendance.StatusAbsent),
			MarkedAt:     fixedNow.Format(time.RFC3339),
		}
	}
	return nil
}

func (m *mockAttendanceRepository) CountPresent(ctx context.Context, sittingID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.marks[sittingID] {
		if r.Status == string(coreattendance.StatusPresent) {
			n++
		}
	}
	return n, nil
}

// mockVoteRepository implements secondary.VoteRepository for testing.
type mockVoteRepository struct {
	mu    sync.Mutex
	votes map[string]map[string]*secondary.VoteRecord
}

func newMockVoteRepository() *mockVoteRepository {
	return &mockVoteRepository{votes: make(map[string]map[string]*secondary.VoteRecord)}
}

func (m *mockVoteRepository) Upsert(ctx context.Context, vote *secondary.VoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.votes[vote.ItemID] == nil {
		m.votes[vote.ItemID] = make(map[string]*secondary.VoteRecord)
	}
	c := *vote
	m.votes[vote.ItemID][vote.LegislatorID] = &c
	return nil
}

func (m *mockVoteRepository) ListByItem(ctx context.Context, itemID string) ([]*secondary.VoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.VoteRecord
	for _, v := range m.votes[itemID] {
		c := *v
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LegislatorID < result[j].LegislatorID })
	return result, nil
}

// mockMatterRepository implements secondary.MatterRepository for testing.
type mockMatterRepository struct {
	matters   map[string]*secondary.MatterRecord
	updateErr error
}

func newMockMatterRepository() *mockMatterRepository {
	return &mockMatterRepository{matters: make(map[string]*secondary.MatterRecord)}
}

func (m *mockMatterRepository) Create(ctx context.Context, matter *secondary.MatterRecord) error {
	c := *matter
	m.matters[matter.ID] = &c
	return nil
}

func (m *mockMatterRepository) GetByID(ctx context.Context, id string) (*secondary.MatterRecord, error) {
	r, ok := m.matters[id]
	if !ok {
		return nil, fault.NotFoundf("matter %s not found", id)
	}
	c := *r
	return &c, nil
}

func (m *mockMatterRepository) List(ctx context.Context, filters secondary.MatterFilters) ([]*secondary.MatterRecord, error) {
	var result []*secondary.MatterRecord
	for _, r := range m.matters {
		if filters.Kind != "" && r.Kind != filters.Kind {
			continue
		}
		if len(filters.Statuses) > 0 {
			match := false
			for _, st := range filters.Statuses {
				if r.Status == st {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		c := *r
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockMatterRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.matters[id]
	if !ok {
		return fault.NotFoundf("matter %s not found", id)
	}
	r.Status = status
	return nil
}

func (m *mockMatterRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.matters[id]; !ok {
		return fault.NotFoundf("matter %s not found", id)
	}
	delete(m.matters, id)
	return nil
}

func (m *mockMatterRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("MAT-%03d", highestSuffix(m.matters, "MAT-")+1), nil
}

// mockOpinionRepository implements secondary.OpinionRepository for testing.
type mockOpinionRepository struct {
	opinions map[string]*secondary.OpinionRecord
}

func newMockOpinionRepository() *mockOpinionRepository {
	return &mockOpinionRepository{opinions: make(map[string]*secondary.OpinionRecord)}
}

func (m *mockOpinionRepository) Create(ctx context.Context, opinion *secondary.OpinionRecord) error {
	c := *opinion
	m.opinions[opinion.ID] = &c
	return nil
}

func (m *mockOpinionRepository) GetByID(ctx context.Context, id string) (*secondary.OpinionRecord, error) {
	r, ok := m.opinions[id]
	if !ok {
		return nil, fault.NotFoundf("opinion %s not found", id)
	}
	c := *r
	return &c, nil
}

func (m *mockOpinionRepository) ListByMatter(ctx context.Context, matterID string) ([]*secondary.OpinionRecord, error) {
	var result []*secondary.OpinionRecord
	for _, r := range m.opinions {
		if r.MatterID == matterID {
			c := *r
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockOpinionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r, ok := m.opinions[id]
	if !ok {
		return fault.NotFoundf("opinion %s not found", id)
	}
	r.Status = status
	return nil
}

func (m *mockOpinionRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("OP-%03d", highestSuffix(m.opinions, "OP-")+1), nil
}

// mockLegislatorRepository implements secondary.LegislatorRepository for testing.
type mockLegislatorRepository struct {
	legislators map[string]*secondary.LegislatorRecord
	members     map[string][]string
}

func newMockLegislatorRepository() *mockLegislatorRepository {
	return &mockLegislatorRepository{
		legislators: make(map[string]*secondary.LegislatorRecord),
		members:     make(map[string][]string),
	}
}

func (m *mockLegislatorRepository) EligibleForPeriod(ctx context.Context, periodID string) ([]string, error) {
	ids := append([]string(nil), m.members[periodID]...)
	sort.Strings(ids)
	return ids, nil
}

func (m *mockLegislatorRepository) Create(ctx context.Context, legislator *secondary.LegislatorRecord) error {
	c := *legislator
	m.legislators[legislator.ID] = &c
	return nil
}

func (m *mockLegislatorRepository) GetByID(ctx context.Context, id string) (*secondary.LegislatorRecord, error) {
	r, ok := m.legislators[id]
	if !ok {
		return nil, fault.NotFoundf("legislator %s not found", id)
	}
	c := *r
	return &c, nil
}

func (m *mockLegislatorRepository) List(ctx context.Context) ([]*secondary.LegislatorRecord, error) {
	var result []*secondary.LegislatorRecord
	for _, r := range m.legislators {
		c := *r
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLegislatorRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LEG-%03d", highestSuffix(m.legislators, "LEG-")+1), nil
}

func (m *mockLegislatorRepository) SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error {
	var kept []string
	for _, id := range m.members[periodID] {
		if id != legislatorID {
			kept = append(kept, id)
		}
	}
	if active {
		kept = append(kept, legislatorID)
	}
	m.members[periodID] = kept
	return nil
}

// mockPeriodRepository implements secondary.PeriodRepository for testing.
type mockPeriodRepository struct {
	periods  map[string]*secondary.PeriodRecord
	sittings *mockSittingRepository
}

func newMockPeriodRepository(sittings *mockSittingRepository) *mockPeriodRepository {
	return &mockPeriodRepository{periods: make(map[string]*secondary.PeriodRecord), sittings: sittings}
}

func (m *mockPeriodRepository) Create(ctx context.Context, period *secondary.PeriodRecord) error {
	c := *period
	m.periods[period.ID] = &c
	return nil
}

func (m *mockPeriodRepository) GetByID(ctx context.Context, id string) (*secondary.PeriodRecord, error) {
	r, ok := m.periods[id]
	if !ok {
		return nil, fault.NotFoundf("period %s not found", id)
	}
	c := *r
	return &c, nil
}

func (m *mockPeriodRepository) List(ctx context.Context) ([]*secondary.PeriodRecord, error) {
	var result []*secondary.PeriodRecord
	for _, r := range m.periods {
		c := *r
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsOn > result[j].StartsOn })
	return result, nil
}

func (m *mockPeriodRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("PER-%03d", highestSuffix(m.periods, "PER-")+1), nil
}

func (m *mockPeriodRepository) NextScheduledSitting(ctx context.Context, periodID, after string) (*secondary.SittingRecord, error) {
	m.sittings.mu.Lock()
	defer m.sittings.mu.Unlock()
	var next *secondary.SittingRecord
	for _, s := range m.sittings.sittings {
		if s.PeriodID != periodID || s.Status != string(coresitting.StatusScheduled) || s.ScheduledAt <= after {
			continue
		}
		if next == nil || s.ScheduledAt < next.ScheduledAt {
			next = s
		}
	}
	if next == nil {
		return nil, nil
	}
	c := *next
	return &c, nil
}

// mockMinutesGenerator implements secondary.MinutesGenerator for testing.
type mockMinutesGenerator struct {
	ref    string
	err    error
	drafts []*secondary.MinutesDraft
}

func (m *mockMinutesGenerator) Generate(ctx context.Context, draft *secondary.MinutesDraft) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.drafts = append(m.drafts, draft)
	return m.ref, nil
}

// mockEventWriter implements secondary.EventWriter for testing.
type mockEventWriter struct {
	mu      sync.Mutex
	actions []string
	err     error
}

func (m *mockEventWriter) LogEvent(ctx context.Context, sittingID, action, subject, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.actions = append(m.actions, sittingID+":"+action)
	return nil
}

var (
	_ secondary.SittingRepository    = (*mockSittingRepository)(nil)
	_ secondary.AgendaRepository     = (*mockAgendaRepository)(nil)
	_ secondary.AttendanceRepository = (*mockAttendanceRepository)(nil)
	_ secondary.VoteRepository       = (*mockVoteRepository)(nil)
	_ secondary.MatterRepository     = (*mockMatterRepository)(nil)
	_ secondary.OpinionRepository    = (*mockOpinionRepository)(nil)
	_ secondary.LegislatorRepository = (*mockLegislatorRepository)(nil)
	_ secondary.PeriodRepository     = (*mockPeriodRepository)(nil)
	_ secondary.MinutesGenerator     = (*mockMinutesGenerator)(nil)
	_ secondary.EventWriter          = (*mockEventWriter)(nil)
)

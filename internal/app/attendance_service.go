package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	coreattendance "github.com/example/plenario/internal/core/attendance"
	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/ports/secondary"
)

// AttendanceServiceImpl implements the AttendanceService interface.
type AttendanceServiceImpl struct {
	sittingRepo    secondary.SittingRepository
	attendanceRepo secondary.AttendanceRepository
	legislatorRepo secondary.LegislatorRepository
	policy         coreattendance.QuorumPolicy
	events         secondary.EventWriter
	locks          *SittingLocks
	logger         *slog.Logger
	now            func() time.Time
}

// NewAttendanceService creates a new AttendanceService with injected dependencies.
func NewAttendanceService(
	sittingRepo secondary.SittingRepository,
	attendanceRepo secondary.AttendanceRepository,
	legislatorRepo secondary.LegislatorRepository,
	policy coreattendance.QuorumPolicy,
	events secondary.EventWriter,
	locks *SittingLocks,
	logger *slog.Logger,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		sittingRepo:    sittingRepo,
		attendanceRepo: attendanceRepo,
		legislatorRepo: legislatorRepo,
		policy:         policy,
		events:         events,
		locks:          locks,
		logger:         logger,
		now:            time.Now,
	}
}

// RecordAttendance stores a legislator's presence mark. Votes already cast
// are never touched.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req primary.RecordAttendanceRequest) error {
	status, err := coreattendance.ParseStatus(req.Status)
	if err != nil {
		return fault.New(fault.Validation, "%v", err)
	}

	unlock := s.locks.Lock(req.SittingID)
	defer unlock()

	sitting, err := s.sittingRepo.GetByID(ctx, req.SittingID)
	if err != nil {
		return err
	}
	roster, err := s.legislatorRepo.EligibleForPeriod(ctx, sitting.PeriodID)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	guardCtx := coreattendance.RecordContext{
		SittingID:     sitting.ID,
		SittingStatus: sitting.Status,
		LegislatorID:  req.LegislatorID,
		OnRoster:      slices.Contains(roster, req.LegislatorID),
		Status:        status,
		Justification: req.Justification,
	}
	if err := coreattendance.CanRecordAttendance(guardCtx).Error(); err != nil {
		return err
	}

	justification := ""
	if status == coreattendance.StatusAbsentJustified {
		justification = req.Justification
	}

	record := &secondary.AttendanceRecord{
		SittingID:     sitting.ID,
		LegislatorID:  req.LegislatorID,
		Status:        string(status),
		Justification: justification,
		MarkedAt:      s.now().UTC().Format(time.RFC3339),
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to record attendance: %w", err)
	}

	recordEvent(ctx, s.events, s.logger, sitting.ID, "attendance", req.LegislatorID, string(status))
	return nil
}

// GetAttendance lists every eligible legislator; those never marked are absent.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, sittingID string) ([]*primary.AttendanceEntry, error) {
	sitting, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, err
	}
	entries, marks, err := s.rollCall(ctx, sitting)
	if err != nil {
		return nil, err
	}

	legislators, err := s.legislatorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list legislators: %w", err)
	}
	names := make(map[string]string, len(legislators))
	for _, l := range legislators {
		names[l.ID] = l.Name
	}

	out := make([]*primary.AttendanceEntry, len(entries))
	for i, e := range entries {
		out[i] = &primary.AttendanceEntry{
			LegislatorID:  e.LegislatorID,
			Name:          names[e.LegislatorID],
			Status:        string(e.Status),
			Justification: e.Justification,
		}
		if m, ok := marks[e.LegislatorID]; ok {
			out[i].MarkedAt = m.MarkedAt
		}
	}
	return out, nil
}

// PresentCount returns how many legislators are marked present.
func (s *AttendanceServiceImpl) PresentCount(ctx context.Context, sittingID string) (int, error) {
	if _, err := s.sittingRepo.GetByID(ctx, sittingID); err != nil {
		return 0, err
	}
	return s.attendanceRepo.CountPresent(ctx, sittingID)
}

// QuorumStatus evaluates presence against the configured quorum rule.
func (s *AttendanceServiceImpl) QuorumStatus(ctx context.Context, sittingID string) (*primary.QuorumStatus, error) {
	sitting, err := s.sittingRepo.GetByID(ctx, sittingID)
	if err != nil {
		return nil, err
	}
	roster, err := s.legislatorRepo.EligibleForPeriod(ctx, sitting.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	present, err := s.attendanceRepo.CountPresent(ctx, sittingID)
	if err != nil {
		return nil, err
	}

	q := coreattendance.Evaluate(s.policy, present, len(roster))
	return &primary.QuorumStatus{
		SittingID: sittingID,
		Present:   q.Present,
		Eligible:  q.Eligible,
		Required:  q.Required,
		Met:       q.Met,
		Rule:      s.policy.Describe(),
	}, nil
}

// rollCall merges the stored marks over the sitting period's roster.
func (s *AttendanceServiceImpl) rollCall(ctx context.Context, sitting *secondary.SittingRecord) ([]coreattendance.Entry, map[string]*secondary.AttendanceRecord, error) {
	return rollCall(ctx, s.legislatorRepo, s.attendanceRepo, sitting)
}

func rollCall(ctx context.Context, roster secondary.LegislatorRoster, attendanceRepo secondary.AttendanceRepository,
	sitting *secondary.SittingRecord) ([]coreattendance.Entry, map[string]*secondary.AttendanceRecord, error) {
	ids, err := roster.EligibleForPeriod(ctx, sitting.PeriodID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}
	records, err := attendanceRepo.ListBySitting(ctx, sitting.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	marks := make(map[string]*secondary.AttendanceRecord, len(records))
	byID := make(map[string]coreattendance.Entry, len(records))
	for _, r := range records {
		marks[r.LegislatorID] = r
		byID[r.LegislatorID] = coreattendance.Entry{
			Status:        coreattendance.Status(r.Status),
			Justification: r.Justification,
		}
	}
	return coreattendance.Merge(ids, byID), marks, nil
}

var _ primary.AttendanceService = (*AttendanceServiceImpl)(nil)

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/plenario/internal/ports/primary"
)

// SittingAdapter is a thin adapter that translates CLI operations to
// SittingService calls. Show also reads the agenda and quorum so the clerk sees
// the whole sitting at once.
type SittingAdapter struct {
	sittings   primary.SittingService
	agenda     primary.AgendaService
	attendance primary.AttendanceService
	out        io.Writer
}

// NewSittingAdapter creates a new SittingAdapter.
func NewSittingAdapter(sittings primary.SittingService, agenda primary.AgendaService, attendance primary.AttendanceService, out io.Writer) *SittingAdapter {
	return &SittingAdapter{
		sittings:   sittings,
		agenda:     agenda,
		attendance: attendance,
		out:        out,
	}
}

// Schedule schedules a new sitting.
func (a *SittingAdapter) Schedule(ctx context.Context, req primary.ScheduleSittingRequest) error {
	resp, err := a.sittings.ScheduleSitting(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Scheduled %s sitting %s for %s\n", resp.Sitting.Kind, resp.SittingID, resp.Sitting.ScheduledAt)
	return nil
}

// List lists sittings.
func (a *SittingAdapter) List(ctx context.Context, filters primary.SittingFilters) error {
	sittings, err := a.sittings.ListSittings(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list sittings: %w", err)
	}

	if len(sittings) == 0 {
		fmt.Fprintln(a.out, "No sittings found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-14s %-22s %-13s %s\n", "ID", "KIND", "SCHEDULED", "STATUS", "AGENDA")
	fmt.Fprintln(a.out, rule)
	for _, s := range sittings {
		agenda := "draft"
		if s.AgendaPublished {
			agenda = "published"
		}
		fmt.Fprintf(a.out, "%-9s %-14s %-22s %s %s\n", s.ID, s.Kind, s.ScheduledAt, pad(s.Status, 13), agenda)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a sitting with its agenda and quorum.
func (a *SittingAdapter) Show(ctx context.Context, sittingID string) error {
	s, err := a.sittings.GetSitting(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to get sitting: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s\n", header("Sitting %s (%s)", s.ID, s.Kind))
	fmt.Fprintf(a.out, "Period:    %s\n", s.PeriodID)
	fmt.Fprintf(a.out, "Scheduled: %s\n", s.ScheduledAt)
	fmt.Fprintf(a.out, "Status:    %s\n", colorStatus(s.Status))
	if s.StatusReason != "" {
		fmt.Fprintf(a.out, "Reason:    %s\n", s.StatusReason)
	}
	if s.Location != "" {
		fmt.Fprintf(a.out, "Location:  %s\n", s.Location)
	}
	if s.StartedAt != "" {
		fmt.Fprintf(a.out, "Started:   %s\n", s.StartedAt)
	}
	if s.ClosedAt != "" {
		fmt.Fprintf(a.out, "Closed:    %s\n", s.ClosedAt)
	}
	if s.MinutesRef != "" {
		fmt.Fprintf(a.out, "Minutes:   %s\n", s.MinutesRef)
	}

	if s.Status == "in_progress" || s.Status == "suspended" {
		q, err := a.attendance.QuorumStatus(ctx, sittingID)
		if err != nil {
			return fmt.Errorf("failed to get quorum: %w", err)
		}
		fmt.Fprintf(a.out, "Quorum:    %s %d/%d present, %d required (%s)\n", check(q.Met), q.Present, q.Eligible, q.Required, q.Rule)
	}

	agenda, err := a.agenda.GetAgenda(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to get agenda: %w", err)
	}
	printAgenda(a.out, agenda)

	return nil
}

// Delete removes a sitting that never started.
func (a *SittingAdapter) Delete(ctx context.Context, sittingID string) error {
	if err := a.sittings.DeleteSitting(ctx, sittingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Sitting %s deleted\n", sittingID)
	return nil
}

// Start opens a sitting.
func (a *SittingAdapter) Start(ctx context.Context, sittingID string) error {
	if err := a.sittings.StartSitting(ctx, sittingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Sitting %s started, roll call open\n", sittingID)
	return nil
}

// Suspend pauses a sitting.
func (a *SittingAdapter) Suspend(ctx context.Context, sittingID string) error {
	if err := a.sittings.SuspendSitting(ctx, sittingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Sitting %s suspended\n", sittingID)
	return nil
}

// Resume continues a suspended sitting.
func (a *SittingAdapter) Resume(ctx context.Context, sittingID string) error {
	if err := a.sittings.ResumeSitting(ctx, sittingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Sitting %s resumed\n", sittingID)
	return nil
}

// Close ends a sitting and reports its follow-ups.
func (a *SittingAdapter) Close(ctx context.Context, sittingID string) error {
	resp, err := a.sittings.CloseSitting(ctx, sittingID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Sitting %s held\n", sittingID)
	if resp.MinutesRef != "" {
		fmt.Fprintf(a.out, "  Minutes: %s\n", resp.MinutesRef)
	} else {
		fmt.Fprintln(a.out, "  Minutes: not generated (see log)")
	}
	switch {
	case resp.LinkedMinutesTo != "":
		fmt.Fprintf(a.out, "  Minutes placed on %s as %s\n", resp.NextSittingID, resp.LinkedMinutesTo)
	case resp.NextSittingID != "":
		fmt.Fprintf(a.out, "  Next sitting %s could not take the minutes (see log)\n", resp.NextSittingID)
	default:
		fmt.Fprintln(a.out, "  No scheduled sitting to receive the minutes")
	}
	return nil
}

// Cancel cancels a sitting.
func (a *SittingAdapter) Cancel(ctx context.Context, sittingID, reason string) error {
	if err := a.sittings.CancelSitting(ctx, sittingID, reason); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Sitting %s cancelled\n", sittingID)
	return nil
}

// Postpone postpones a sitting.
func (a *SittingAdapter) Postpone(ctx context.Context, sittingID, reason string) error {
	if err := a.sittings.PostponeSitting(ctx, sittingID, reason); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Sitting %s postponed\n", sittingID)
	return nil
}

// Minutes prints a held sitting's minutes.
func (a *SittingAdapter) Minutes(ctx context.Context, sittingID string) error {
	m, err := a.sittings.GetMinutes(ctx, sittingID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, m.Body)
	return nil
}

// Log prints a sitting's audit trail.
func (a *SittingAdapter) Log(ctx context.Context, sittingID string, limit int) error {
	events, err := a.sittings.SittingLog(ctx, sittingID, limit)
	if err != nil {
		return fmt.Errorf("failed to read sitting log: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events recorded")
		return nil
	}

	for _, e := range events {
		line := fmt.Sprintf("%s %-20s %-14s %-9s", e.CreatedAt, e.Action, orDash(e.ActorID), e.Subject)
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func printAgenda(out io.Writer, agenda *primary.Agenda) {
	state := "draft"
	if agenda.Published {
		state = "published"
	}
	fmt.Fprintf(out, "\nAgenda (%s, %s)\n", state, plural(len(agenda.Items), "item"))
	if len(agenda.Items) == 0 {
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintln(out, rule)
	section := ""
	for _, item := range agenda.Items {
		if item.Section != section {
			section = item.Section
			fmt.Fprintf(out, "[%s]\n", section)
		}
		line := fmt.Sprintf("  %2d. %-9s %-8s %s", item.Position, item.ID, item.MatterID, pad(item.Status, 19))
		if item.MatterTitle != "" {
			line += " " + item.MatterTitle
		}
		if item.Status == "voted" {
			line += fmt.Sprintf(" (%d-%d-%d %s)", item.Yes, item.No, item.Abstain, colorStatus(item.Outcome))
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
}

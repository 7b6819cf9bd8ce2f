package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/plenario/internal/ports/primary"
)

// ConductionAdapter drives the floor work of a sitting in progress: roll call
// and nominal voting.
type ConductionAdapter struct {
	attendance primary.AttendanceService
	voting     primary.VotingService
	out        io.Writer
}

// NewConductionAdapter creates a new ConductionAdapter.
func NewConductionAdapter(attendance primary.AttendanceService, voting primary.VotingService, out io.Writer) *ConductionAdapter {
	return &ConductionAdapter{
		attendance: attendance,
		voting:     voting,
		out:        out,
	}
}

// Mark records a legislator's attendance.
func (a *ConductionAdapter) Mark(ctx context.Context, req primary.RecordAttendanceRequest) error {
	if err := a.attendance.RecordAttendance(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s %s\n", req.LegislatorID, colorStatus(req.Status))
	return nil
}

// RollCall prints the attendance of every eligible legislator and the quorum.
func (a *ConductionAdapter) RollCall(ctx context.Context, sittingID string) error {
	entries, err := a.attendance.GetAttendance(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to get attendance: %w", err)
	}

	fmt.Fprintf(a.out, "\n%-9s %-28s %-17s %s\n", "ID", "NAME", "STATUS", "JUSTIFICATION")
	fmt.Fprintln(a.out, rule)
	for _, e := range entries {
		fmt.Fprintf(a.out, "%-9s %-28s %s %s\n", e.LegislatorID, e.Name, pad(e.Status, 17), e.Justification)
	}
	fmt.Fprintln(a.out)

	return a.Quorum(ctx, sittingID)
}

// Quorum prints the quorum summary.
func (a *ConductionAdapter) Quorum(ctx context.Context, sittingID string) error {
	q, err := a.attendance.QuorumStatus(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to get quorum: %w", err)
	}
	fmt.Fprintf(a.out, "%s Quorum: %d of %d present, %d required (%s)\n", check(q.Met), q.Present, q.Eligible, q.Required, q.Rule)
	return nil
}

// Check runs the opinion gate on an item.
func (a *ConductionAdapter) Check(ctx context.Context, itemID string) error {
	e, err := a.voting.CheckEligibility(ctx, itemID)
	if err != nil {
		return err
	}
	if e.Eligible {
		fmt.Fprintf(a.out, "%s %s (%s) may be voted\n", check(true), itemID, e.MatterID)
		return nil
	}
	fmt.Fprintf(a.out, "%s %s (%s) blocked: %s", check(false), itemID, e.MatterID, e.Reason)
	if len(e.Pending) > 0 {
		fmt.Fprintf(a.out, " [%s]", strings.Join(e.Pending, ", "))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Open starts the vote on an item.
func (a *ConductionAdapter) Open(ctx context.Context, itemID string) error {
	if err := a.voting.OpenVoting(ctx, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Voting open on %s\n", itemID)
	return nil
}

// Cast records a vote.
func (a *ConductionAdapter) Cast(ctx context.Context, req primary.CastVoteRequest) error {
	if err := a.voting.CastVote(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s voted %s on %s\n", req.LegislatorID, req.Choice, req.ItemID)
	return nil
}

// Partial prints the running count of a vote.
func (a *ConductionAdapter) Partial(ctx context.Context, itemID string) error {
	r, err := a.voting.PartialResult(ctx, itemID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %d yes, %d no, %d abstain (%d of %d present voted)\n", itemID, r.Yes, r.No, r.Abstain, r.Total, r.Present)
	if r.PctDefined {
		fmt.Fprintf(a.out, "  yes %.1f%%  no %.1f%%\n", r.YesPct, r.NoPct)
	} else {
		fmt.Fprintln(a.out, "  shares undefined until a yes or no vote is cast")
	}
	return nil
}

// Close freezes the tally of an item.
func (a *ConductionAdapter) Close(ctx context.Context, itemID string) error {
	r, err := a.voting.CloseVoting(ctx, itemID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s %s: %d yes, %d no, %d abstain\n", itemID, colorStatus(r.Outcome), r.Yes, r.No, r.Abstain)
	if r.MatterStatus != "" {
		fmt.Fprintf(a.out, "  Matter now %s\n", colorStatus(r.MatterStatus))
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(a.out, "  Present but did not vote: %s\n", strings.Join(r.Missing, ", "))
	}
	return nil
}

// Votes lists the nominal votes of an item.
func (a *ConductionAdapter) Votes(ctx context.Context, itemID string) error {
	votes, err := a.voting.ListVotes(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to list votes: %w", err)
	}

	if len(votes) == 0 {
		fmt.Fprintln(a.out, "No votes cast")
		return nil
	}
	for _, v := range votes {
		fmt.Fprintf(a.out, "%-9s %-8s %s\n", v.LegislatorID, v.Choice, v.CastAt)
	}
	return nil
}

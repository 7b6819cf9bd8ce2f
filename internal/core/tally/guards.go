package tally

import (
	"fmt"

	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/core/opinion"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    fault.Kind
	Reason  string
}

// Error converts the guard result to a typed error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fault.New(r.Kind, "%s", r.Reason)
}

func deny(kind fault.Kind, format string, args ...any) GuardResult {
	return GuardResult{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// OpenVotingContext provides context for opening a vote on an agenda item.
type OpenVotingContext struct {
	ItemID            string
	MatterID          string
	SittingStatus     string
	SittingInProgress bool
	State             State
	RequiresVote      bool
	OpenItemID        string // item already voting in the same sitting, empty if none
	Eligibility       opinion.Eligibility
	PresentCount      int
	RequiredQuorum    int
}

// CanOpenVoting evaluates whether voting may start on an item.
// Rules, in order:
// - Sitting must be in progress
// - Item must not have started voting
// - Matter must require a vote (non-vote matters are marked read instead)
// - No other item in the sitting may be voting
// - Opinion gate must pass
// - Quorum must hold
func CanOpenVoting(ctx OpenVotingContext) GuardResult {
	if !ctx.SittingInProgress {
		return deny(fault.InvalidState, "cannot open voting on %s: sitting is %s, not in_progress", ctx.ItemID, ctx.SittingStatus)
	}
	if ctx.State != StateNotStarted {
		return deny(fault.InvalidState, "cannot open voting on %s: voting is %s", ctx.ItemID, ctx.State)
	}
	if !ctx.RequiresVote {
		return deny(fault.InvalidState, "matter %s does not require a vote; mark item %s as read instead", ctx.MatterID, ctx.ItemID)
	}
	if ctx.OpenItemID != "" && ctx.OpenItemID != ctx.ItemID {
		return deny(fault.InvalidState, "cannot open voting on %s: item %s is already being voted", ctx.ItemID, ctx.OpenItemID)
	}
	if !ctx.Eligibility.Eligible {
		if ctx.Eligibility.Reason == opinion.ReasonInCommittee {
			return deny(fault.InCommittee, "matter %s is still in committee", ctx.MatterID)
		}
		return deny(fault.OpinionPending, "matter %s is awaiting committee opinions", ctx.MatterID)
	}
	if ctx.PresentCount < ctx.RequiredQuorum {
		return deny(fault.QuorumNotMet, "quorum not met: %d present, %d required", ctx.PresentCount, ctx.RequiredQuorum)
	}
	return GuardResult{Allowed: true}
}

// CastVoteContext provides context for recording a vote.
type CastVoteContext struct {
	ItemID       string
	LegislatorID string
	State        State
	IsPresent    bool
}

// CanCastVote evaluates whether a legislator may vote on an item.
// Rules:
// - Voting must be open
// - Legislator must be marked present
func CanCastVote(ctx CastVoteContext) GuardResult {
	if ctx.State != StateOpen {
		return deny(fault.NotVoting, "item %s is not open for voting (voting is %s)", ctx.ItemID, ctx.State)
	}
	if !ctx.IsPresent {
		return deny(fault.NotPresent, "legislator %s is not marked present", ctx.LegislatorID)
	}
	return GuardResult{Allowed: true}
}

// CanCloseVoting evaluates whether voting on an item can be closed.
// Rule: voting must be open. Closing twice fails.
func CanCloseVoting(itemID string, state State) GuardResult {
	if state != StateOpen {
		return deny(fault.NotVoting, "item %s is not open for voting (voting is %s)", itemID, state)
	}
	return GuardResult{Allowed: true}
}

// Package opinion contains the committee-opinion gate: the pure rule deciding
// whether a matter may have its vote opened.
package opinion

import (
	"fmt"
	"strings"

	"github.com/example/plenario/internal/core/fault"
)

// Status is the state of a committee opinion (parecer).
type Status string

const (
	StatusPending Status = "pending"
	StatusIssued  Status = "issued"
	StatusWaived  Status = "waived"
)

// ParseStatus validates an opinion status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusIssued, StatusWaived:
		return st, nil
	}
	return "", fmt.Errorf("invalid opinion status %q", s)
}

// IsFinalized reports whether an opinion no longer blocks voting.
func IsFinalized(s Status) bool {
	return s == StatusIssued || s == StatusWaived
}

// Reason explains why a matter is not eligible for voting.
type Reason string

const (
	ReasonAwaitingOpinion Reason = "AwaitingOpinion"
	ReasonInCommittee     Reason = "InCommittee"
)

// matterInCommittee mirrors matter.StatusInCommittee without importing it.
const matterInCommittee = "in_committee"

// Summary is the minimal opinion info the gate needs.
type Summary struct {
	ID        string
	Committee string
	Status    Status
}

// GateContext provides the matter facts evaluated by the gate.
type GateContext struct {
	MatterID        string
	RequiresOpinion bool
	MatterStatus    string
	Opinions        []Summary
}

// Eligibility is the gate's verdict.
type Eligibility struct {
	Eligible bool
	Reason   Reason
	// Pending lists the committees whose opinions are still open.
	Pending []string
}

// IsVotingEligible evaluates the gate. It only prevents starting a vote and
// never changes state.
func IsVotingEligible(ctx GateContext) Eligibility {
	if ctx.RequiresOpinion {
		var pending []string
		for _, op := range ctx.Opinions {
			if !IsFinalized(op.Status) {
				pending = append(pending, op.Committee)
			}
		}
		if len(pending) > 0 {
			return Eligibility{Reason: ReasonAwaitingOpinion, Pending: pending}
		}
	}
	if ctx.MatterStatus == matterInCommittee {
		return Eligibility{Reason: ReasonInCommittee}
	}
	return Eligibility{Eligible: true}
}

// Error converts an ineligible verdict into a typed failure for matterID.
func (e Eligibility) Error(matterID string) error {
	switch {
	case e.Eligible:
		return nil
	case e.Reason == ReasonAwaitingOpinion:
		return fault.New(fault.OpinionPending, "matter %s is awaiting committee opinions (%s)", matterID, strings.Join(e.Pending, ", "))
	default:
		return fault.New(fault.InCommittee, "matter %s is still in committee", matterID)
	}
}

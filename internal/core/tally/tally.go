// Package tally contains the pure vote-counting logic for nominal votes.
// This is part of the Functional Core - no I/O, only pure functions.
package tally

import "fmt"

// Choice is a single legislator's vote.
type Choice string

const (
	ChoiceYes     Choice = "yes"
	ChoiceNo      Choice = "no"
	ChoiceAbstain Choice = "abstain"
)

// ParseChoice validates a choice string.
func ParseChoice(s string) (Choice, error) {
	switch c := Choice(s); c {
	case ChoiceYes, ChoiceNo, ChoiceAbstain:
		return c, nil
	}
	return "", fmt.Errorf("invalid vote choice %q (want yes, no or abstain)", s)
}

// Outcome is the result of a closed vote.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
	OutcomeTied     Outcome = "tied"
)

// State is the per-item tally state.
type State string

const (
	StateNotStarted State = "not_started"
	StateOpen       State = "open"
	StateClosed     State = "closed"
)

// Counts aggregates cast votes.
type Counts struct {
	Yes     int
	No      int
	Abstain int
}

// Total returns the number of votes cast, abstentions included.
func (c Counts) Total() int {
	return c.Yes + c.No + c.Abstain
}

// Count aggregates choices. Unknown choices are ignored.
func Count(choices []Choice) Counts {
	var c Counts
	for _, ch := range choices {
		switch ch {
		case ChoiceYes:
			c.Yes++
		case ChoiceNo:
			c.No++
		case ChoiceAbstain:
			c.Abstain++
		}
	}
	return c
}

// Decide computes the plain-count outcome. Ties are reported as such and
// left to a TieBreaker.
func Decide(c Counts) Outcome {
	switch {
	case c.Yes > c.No:
		return OutcomeApproved
	case c.No > c.Yes:
		return OutcomeRejected
	default:
		return OutcomeTied
	}
}

// Share returns count/(yes+no) as a percentage. Abstentions never enter the
// denominator. ok is false when nobody voted yes or no.
func Share(count int, c Counts) (pct float64, ok bool) {
	den := c.Yes + c.No
	if den == 0 {
		return 0, false
	}
	return float64(count) * 100 / float64(den), true
}

// Missing returns the present legislators who have not voted, preserving the
// order of present.
func Missing(present []string, voted map[string]bool) []string {
	var out []string
	for _, id := range present {
		if !voted[id] {
			out = append(out, id)
		}
	}
	return out
}

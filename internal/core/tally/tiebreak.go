package tally

import "fmt"

// TieBreaker turns a tied outcome into the outcome used to advance the
// matter. The recorded tally keeps OutcomeTied either way.
type TieBreaker interface {
	Resolve(o Outcome) Outcome
	Name() string
}

// TieRejects treats a tie as a rejection: the proposal did not reach more
// yes than no votes.
type TieRejects struct{}

func (TieRejects) Resolve(o Outcome) Outcome {
	if o == OutcomeTied {
		return OutcomeRejected
	}
	return o
}

func (TieRejects) Name() string { return "reject" }

// TieStands leaves ties unresolved; the matter keeps its status until an
// operator acts on it.
type TieStands struct{}

func (TieStands) Resolve(o Outcome) Outcome { return o }

func (TieStands) Name() string { return "stand" }

// ParseTieBreaker resolves a configured policy name.
func ParseTieBreaker(name string) (TieBreaker, error) {
	switch name {
	case "", "reject":
		return TieRejects{}, nil
	case "stand":
		return TieStands{}, nil
	}
	return nil, fmt.Errorf("unknown tie-break policy %q (want reject or stand)", name)
}

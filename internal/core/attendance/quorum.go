package attendance

import "fmt"

// QuorumPolicy computes how many present legislators are required to open a
// vote, given the size of the eligible roster.
type QuorumPolicy interface {
	Required(eligible int) int
	Describe() string
}

// FixedQuorum requires a configured absolute number of legislators.
type FixedQuorum struct {
	Minimum int
}

func (q FixedQuorum) Required(int) int { return q.Minimum }

func (q FixedQuorum) Describe() string { return fmt.Sprintf("fixed minimum of %d", q.Minimum) }

// MajorityQuorum requires an absolute majority of the eligible roster.
type MajorityQuorum struct{}

func (MajorityQuorum) Required(eligible int) int { return eligible/2 + 1 }

func (MajorityQuorum) Describe() string { return "absolute majority" }

// ParseQuorumPolicy resolves a configured rule name.
func ParseQuorumPolicy(rule string, minimum int) (QuorumPolicy, error) {
	switch rule {
	case "", "fixed":
		if minimum < 0 {
			return nil, fmt.Errorf("quorum minimum must not be negative (got %d)", minimum)
		}
		return FixedQuorum{Minimum: minimum}, nil
	case "majority":
		return MajorityQuorum{}, nil
	}
	return nil, fmt.Errorf("unknown quorum rule %q (want fixed or majority)", rule)
}

// Quorum summarises presence against the policy.
type Quorum struct {
	Present  int
	Eligible int
	Required int
	Met      bool
}

// Evaluate computes the quorum summary.
func Evaluate(p QuorumPolicy, present, eligible int) Quorum {
	req := p.Required(eligible)
	return Quorum{Present: present, Eligible: eligible, Required: req, Met: present >= req}
}

package primary

import "context"

// VotingService defines the primary port for nominal voting on agenda items.
type VotingService interface {
	// CheckEligibility runs the committee-opinion gate for an item.
	CheckEligibility(ctx context.Context, itemID string) (*Eligibility, error)

	// OpenVoting starts the vote on an item.
	OpenVoting(ctx context.Context, itemID string) error

	// CastVote records or replaces a legislator's vote.
	CastVote(ctx context.Context, req CastVoteRequest) error

	// PartialResult aggregates the votes cast so far.
	PartialResult(ctx context.Context, itemID string) (*PartialResult, error)

	// CloseVoting freezes the tally and advances the matter.
	CloseVoting(ctx context.Context, itemID string) (*VotingResult, error)

	// ListVotes lists the votes cast on an item.
	ListVotes(ctx context.Context, itemID string) ([]*Vote, error)
}

// CastVoteRequest contains parameters for casting a vote.
type CastVoteRequest struct {
	ItemID       string `json:"item_id"`
	LegislatorID string `json:"legislator_id"`
	Choice       string `json:"choice"`
}

// Eligibility is the opinion gate's verdict at the port boundary.
type Eligibility struct {
	ItemID   string   `json:"item_id"`
	MatterID string   `json:"matter_id"`
	Eligible bool     `json:"eligible"`
	Reason   string   `json:"reason"` // AwaitingOpinion or InCommittee when not eligible
	Pending  []string `json:"pending"`
}

// PartialResult is a running count of an open or closed vote.
type PartialResult struct {
	ItemID  string `json:"item_id"`
	Yes     int    `json:"yes"`
	No      int    `json:"no"`
	Abstain int    `json:"abstain"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	// YesPct and NoPct are shares of yes+no; undefined when PctDefined is false.
	YesPct     float64 `json:"yes_pct"`
	NoPct      float64 `json:"no_pct"`
	PctDefined bool    `json:"pct_defined"`
}

// VotingResult is the frozen result of a closed vote.
type VotingResult struct {
	ItemID  string `json:"item_id"`
	Yes     int    `json:"yes"`
	No      int    `json:"no"`
	Abstain int    `json:"abstain"`
	Outcome string `json:"outcome"`
	// Missing lists present legislators who did not vote.
	Missing      []string `json:"missing"`
	MatterStatus string   `json:"matter_status"` // status applied to the matter; empty when unchanged
}

// Vote represents a single nominal vote at the port boundary.
type Vote struct {
	ItemID       string `json:"item_id"`
	LegislatorID string `json:"legislator_id"`
	Choice       string `json:"choice"`
	CastAt       string `json:"cast_at"`
}

package primary

import "context"

// MatterService defines the primary port for the matters handled in sittings.
type MatterService interface {
	// FileMatter registers a matter; capabilities default from its kind.
	FileMatter(ctx context.Context, req FileMatterRequest) (*Matter, error)

	// GetMatter retrieves a matter by ID.
	GetMatter(ctx context.Context, matterID string) (*Matter, error)

	// ListMatters lists matters with optional filters.
	ListMatters(ctx context.Context, filters MatterFilters) ([]*Matter, error)

	// SetMatterStatus moves a matter outside of conduction (e.g. sent to committee).
	SetMatterStatus(ctx context.Context, matterID, status string) error
}

// FileMatterRequest contains parameters for filing a matter.
type FileMatterRequest struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	// Overrides for the kind's capabilities; nil keeps the default.
	RequiresVote    *bool `json:"requires_vote"`
	RequiresOpinion *bool `json:"requires_opinion"`
}

// Matter represents a matter entity at the port boundary.
type Matter struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	RequiresVote    bool   `json:"requires_vote"`
	RequiresOpinion bool   `json:"requires_opinion"`
	CreatedAt       string `json:"created_at"`
}

// MatterFilters contains filter options for listing matters.
type MatterFilters struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Limit  int    `json:"limit"`
}

// OpinionService defines the primary port for committee opinions (pareceres).
type OpinionService interface {
	// RequestOpinion opens a pending opinion of a committee on a matter.
	RequestOpinion(ctx context.Context, matterID, committee string) (*Opinion, error)

	// IssueOpinion finalizes an opinion as issued.
	IssueOpinion(ctx context.Context, opinionID string) error

	// WaiveOpinion finalizes an opinion as waived.
	WaiveOpinion(ctx context.Context, opinionID string) error

	// ListOpinions lists the opinions of a matter.
	ListOpinions(ctx context.Context, matterID string) ([]*Opinion, error)
}

// Opinion represents a committee opinion at the port boundary.
type Opinion struct {
	ID        string `json:"id"`
	MatterID  string `json:"matter_id"`
	Committee string `json:"committee"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// RosterService defines the primary port for legislators and periods.
type RosterService interface {
	// CreatePeriod registers a legislative period.
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*Period, error)

	// ListPeriods lists periods, most recent first.
	ListPeriods(ctx context.Context) ([]*Period, error)

	// RegisterLegislator registers a legislator.
	RegisterLegislator(ctx context.Context, name, party string) (*Legislator, error)

	// ListLegislators lists every legislator.
	ListLegislators(ctx context.Context) ([]*Legislator, error)

	// SetMembership adds or removes a legislator from a period's roster.
	SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error

	// Roster lists the eligible legislators of a period.
	Roster(ctx context.Context, periodID string) ([]*Legislator, error)
}

// CreatePeriodRequest contains parameters for creating a period.
type CreatePeriodRequest struct {
	Name     string `json:"name"`
	StartsOn string `json:"starts_on"` // YYYY-MM-DD
	EndsOn   string `json:"ends_on"`   // YYYY-MM-DD
}

// Period represents a legislative period at the port boundary.
type Period struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartsOn  string `json:"starts_on"`
	EndsOn    string `json:"ends_on"`
	CreatedAt string `json:"created_at"`
}

// Legislator represents a legislator at the port boundary.
type Legislator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

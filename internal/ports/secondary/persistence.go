// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// SittingRepository defines the secondary port for sitting persistence.
type SittingRepository interface {
	// Create persists a new sitting.
	Create(ctx context.Context, sitting *SittingRecord) error

	// GetByID retrieves a sitting by its ID.
	GetByID(ctx context.Context, id string) (*SittingRecord, error)

	// List retrieves sittings matching the given filters, oldest first.
	List(ctx context.Context, filters SittingFilters) ([]*SittingRecord, error)

	// Delete removes a sitting and its agenda from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available sitting ID.
	GetNextID(ctx context.Context) (string, error)

	// UpdateStatus writes a lifecycle transition.
	UpdateStatus(ctx context.Context, id string, update SittingStatusUpdate) error

	// SetAgendaPublished flips the published flag of a sitting's agenda.
	SetAgendaPublished(ctx context.Context, id string, published bool) error

	// SetMinutesRef stores the reference returned by the minutes generator.
	SetMinutesRef(ctx context.Context, id, ref string) error
}

// SittingRecord represents a sitting as stored in persistence.
type SittingRecord struct {
	ID              string
	PeriodID        string
	Kind            string
	ScheduledAt     string
	Location        string // Empty string means null
	Notes           string // Empty string means null
	Status          string
	AgendaPublished bool
	StatusReason    string // Empty string means null
	StartedAt       string // Empty string means null
	ClosedAt        string // Empty string means null
	MinutesRef      string // Empty string means null
	CreatedAt       string
	UpdatedAt       string
}

// SittingFilters contains filter options for querying sittings.
type SittingFilters struct {
	PeriodID string
	Status   string
	Limit    int
}

// SittingStatusUpdate carries the columns written by a lifecycle transition.
// Empty timestamps leave the stored value untouched.
type SittingStatusUpdate struct {
	Status       string
	StatusReason string
	StartedAt    string
	ClosedAt     string
}

// AgendaRepository defines the secondary port for agenda item persistence.
type AgendaRepository interface {
	// Create persists a new agenda item.
	Create(ctx context.Context, item *AgendaItemRecord) error

	// GetByID retrieves an agenda item by its ID.
	GetByID(ctx context.Context, id string) (*AgendaItemRecord, error)

	// ListBySitting retrieves a sitting's items ordered by section then position.
	ListBySitting(ctx context.Context, sittingID string) ([]*AgendaItemRecord, error)

	// Delete removes an agenda item.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available agenda item ID.
	GetNextID(ctx context.Context) (string, error)

	// SetPositions rewrites the section and position of the given items so that
	// orderedIDs[i] ends up at position i+1 of section, atomically.
	SetPositions(ctx context.Context, sittingID, section string, orderedIDs []string) error

	// UpdateStatus sets an item's conduction status.
	UpdateStatus(ctx context.Context, id, status string) error

	// RecordResult freezes a closed tally on the item and marks it voted.
	RecordResult(ctx context.Context, id string, result VoteResultRecord) error

	// ActiveSittingsByMatter maps every matter carried by the agenda of a
	// scheduled or in-progress sitting other than excludeSittingID to that sitting.
	ActiveSittingsByMatter(ctx context.Context, excludeSittingID string) (map[string]string, error)
}

// AgendaItemRecord represents an agenda item as stored in persistence.
type AgendaItemRecord struct {
	ID        string
	SittingID string
	MatterID  string
	Section   string
	Position  int
	Status    string
	Yes       int
	No        int
	Abstain   int
	Outcome   string // Empty string means null - set when voted
	VotedAt   string // Empty string means null
	CreatedAt string
	UpdatedAt string
}

// VoteResultRecord is the frozen tally written on close.
type VoteResultRecord struct {
	Yes     int
	No      int
	Abstain int
	Outcome string
	VotedAt string
}

// AttendanceRepository defines the secondary port for the per-sitting roll call.
type AttendanceRepository interface {
	// Upsert stores a legislator's attendance, replacing any earlier mark.
	Upsert(ctx context.Context, record *AttendanceRecord) error

	// ListBySitting retrieves the explicit marks of a sitting.
	ListBySitting(ctx context.Context, sittingID string) ([]*AttendanceRecord, error)

	// Seed inserts an absent mark for every legislator without one, in one transaction.
	Seed(ctx context.Context, sittingID string, legislatorIDs []string) error

	// CountPresent returns the number of legislators marked present.
	CountPresent(ctx context.Context, sittingID string) (int, error)
}

// AttendanceRecord represents one legislator's mark in a sitting.
type AttendanceRecord struct {
	SittingID     string
	LegislatorID  string
	Status        string
	Justification string // Empty string means null
	MarkedAt      string
}

// VoteRepository defines the secondary port for nominal votes.
type VoteRepository interface {
	// Upsert stores a vote, replacing the legislator's earlier choice on the item.
	Upsert(ctx context.Context, vote *VoteRecord) error

	// ListByItem retrieves the votes cast on an item.
	ListByItem(ctx context.Context, itemID string) ([]*VoteRecord, error)
}

// VoteRecord represents a single nominal vote.
type VoteRecord struct {
	ItemID       string
	LegislatorID string
	Choice       string
	CastAt       string
}

// MatterRepository defines the secondary port for the matter collaborator:
// capabilities and status are read, status is written after conduction.
type MatterRepository interface {
	// Create persists a new matter.
	Create(ctx context.Context, matter *MatterRecord) error

	// GetByID retrieves a matter by its ID.
	GetByID(ctx context.Context, id string) (*MatterRecord, error)

	// List retrieves matters matching the given filters.
	List(ctx context.Context, filters MatterFilters) ([]*MatterRecord, error)

	// UpdateStatus sets a matter's status.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete removes a matter.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available matter ID.
	GetNextID(ctx context.Context) (string, error)
}

// MatterRecord represents a matter as stored in persistence.
type MatterRecord struct {
	ID              string
	Kind            string
	Title           string
	Status          string
	RequiresVote    bool
	RequiresOpinion bool
	CreatedAt       string
	UpdatedAt       string
}

// MatterFilters contains filter options for querying matters.
type MatterFilters struct {
	Kind     string
	Statuses []string
	Limit    int
}

// OpinionRepository defines the secondary port for committee opinions.
type OpinionRepository interface {
	// Create persists a new opinion.
	Create(ctx context.Context, opinion *OpinionRecord) error

	// GetByID retrieves an opinion by its ID.
	GetByID(ctx context.Context, id string) (*OpinionRecord, error)

	// ListByMatter retrieves every opinion linked to a matter.
	ListByMatter(ctx context.Context, matterID string) ([]*OpinionRecord, error)

	// UpdateStatus sets an opinion's status.
	UpdateStatus(ctx context.Context, id, status string) error

	// GetNextID returns the next available opinion ID.
	GetNextID(ctx context.Context) (string, error)
}

// OpinionRecord represents a committee opinion as stored in persistence.
type OpinionRecord struct {
	ID        string
	MatterID  string
	Committee string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// LegislatorRoster is the narrow port the conduction core uses to learn who
// may sit in a period.
type LegislatorRoster interface {
	// EligibleForPeriod returns the active legislators of a period, ordered by ID.
	EligibleForPeriod(ctx context.Context, periodID string) ([]string, error)
}

// LegislatorRepository defines the secondary port for legislator records and
// their membership in legislative periods.
type LegislatorRepository interface {
	LegislatorRoster

	// Create persists a new legislator.
	Create(ctx context.Context, legislator *LegislatorRecord) error

	// GetByID retrieves a legislator by its ID.
	GetByID(ctx context.Context, id string) (*LegislatorRecord, error)

	// List retrieves every legislator.
	List(ctx context.Context) ([]*LegislatorRecord, error)

	// GetNextID returns the next available legislator ID.
	GetNextID(ctx context.Context) (string, error)

	// SetMembership adds, reactivates or deactivates a legislator in a period.
	SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error
}

// LegislatorRecord represents a legislator as stored in persistence.
type LegislatorRecord struct {
	ID        string
	Name      string
	Party     string // Empty string means null
	CreatedAt string
}

// PeriodRepository defines the secondary port for legislative periods
// (legislative sessions / terms that group sittings).
type PeriodRepository interface {
	// Create persists a new period.
	Create(ctx context.Context, period *PeriodRecord) error

	// GetByID retrieves a period by its ID.
	GetByID(ctx context.Context, id string) (*PeriodRecord, error)

	// List retrieves every period, most recent first.
	List(ctx context.Context) ([]*PeriodRecord, error)

	// GetNextID returns the next available period ID.
	GetNextID(ctx context.Context) (string, error)

	// NextScheduledSitting returns the earliest scheduled sitting of periodID
	// after the given RFC3339 instant. Returns nil, nil when none exists.
	NextScheduledSitting(ctx context.Context, periodID, after string) (*SittingRecord, error)
}

// PeriodRecord represents a legislative period as stored in persistence.
type PeriodRecord struct {
	ID        string
	Name      string
	StartsOn  string // YYYY-MM-DD
	EndsOn    string // YYYY-MM-DD
	CreatedAt string
}

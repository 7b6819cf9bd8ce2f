package primary

import "context"

// AgendaService defines the primary port for assembling and conducting a
// sitting's agenda (pauta).
type AgendaService interface {
	// ListEligibleMatters lists matters that may be added to the sitting's agenda.
	ListEligibleMatters(ctx context.Context, sittingID string) ([]*Matter, error)

	// AddItem appends a matter to a section of the agenda.
	AddItem(ctx context.Context, req AddItemRequest) (*AgendaItem, error)

	// RemoveItem removes an item from an unpublished agenda.
	RemoveItem(ctx context.Context, itemID string) error

	// Reorder rewrites the order of one section.
	Reorder(ctx context.Context, req ReorderRequest) error

	// ChangeSection moves an item to the end of another section.
	ChangeSection(ctx context.Context, itemID, section string) error

	// Publish freezes the agenda structure.
	Publish(ctx context.Context, sittingID string) error

	// Unpublish reopens a published agenda while the sitting is still scheduled.
	Unpublish(ctx context.Context, sittingID string) error

	// GetAgenda retrieves the agenda ordered by section then position.
	GetAgenda(ctx context.Context, sittingID string) (*Agenda, error)

	// GetItem retrieves a single agenda item.
	GetItem(ctx context.Context, itemID string) (*AgendaItem, error)

	// MarkRead finishes an item whose matter does not require a vote.
	MarkRead(ctx context.Context, itemID string) error

	// PostponeItem defers an item to a later sitting.
	PostponeItem(ctx context.Context, itemID string) error

	// WithdrawItem withdraws an item from the sitting.
	WithdrawItem(ctx context.Context, itemID string) error
}

// AddItemRequest contains parameters for adding an agenda item.
type AddItemRequest struct {
	SittingID string `json:"sitting_id"`
	MatterID  string `json:"matter_id"`
	Section   string `json:"section"`
}

// ReorderRequest contains parameters for reordering a section.
type ReorderRequest struct {
	SittingID string   `json:"sitting_id"`
	Section   string   `json:"section"`
	ItemIDs   []string `json:"item_ids"`
}

// Agenda represents a sitting's agenda at the port boundary.
type Agenda struct {
	SittingID string        `json:"sitting_id"`
	Published bool          `json:"published"`
	Items     []*AgendaItem `json:"items"`
}

// AgendaItem represents an agenda item at the port boundary.
type AgendaItem struct {
	ID          string `json:"id"`
	SittingID   string `json:"sitting_id"`
	MatterID    string `json:"matter_id"`
	MatterTitle string `json:"matter_title"`
	Section     string `json:"section"`
	Position    int    `json:"position"`
	Status      string `json:"status"`
	Yes         int    `json:"yes"`
	No          int    `json:"no"`
	Abstain     int    `json:"abstain"`
	Outcome     string `json:"outcome"`
	VotedAt     string `json:"voted_at"`
}

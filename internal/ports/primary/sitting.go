package primary

import "context"

// SittingService defines the primary port for the sitting lifecycle.
type SittingService interface {
	// ScheduleSitting creates a scheduled sitting in a legislative period.
	ScheduleSitting(ctx context.Context, req ScheduleSittingRequest) (*ScheduleSittingResponse, error)

	// GetSitting retrieves a sitting by ID.
	GetSitting(ctx context.Context, sittingID string) (*Sitting, error)

	// ListSittings lists sittings with optional filters.
	ListSittings(ctx context.Context, filters SittingFilters) ([]*Sitting, error)

	// DeleteSitting removes a sitting that never reached conduction.
	DeleteSitting(ctx context.Context, sittingID string) error

	// StartSitting opens a scheduled sitting and seeds its roll call.
	StartSitting(ctx context.Context, sittingID string) error

	// SuspendSitting pauses a sitting in progress.
	SuspendSitting(ctx context.Context, sittingID string) error

	// ResumeSitting continues a suspended sitting.
	ResumeSitting(ctx context.Context, sittingID string) error

	// CloseSitting ends a sitting once every item is finished. Minutes and the
	// next sitting's linkage are produced best-effort afterwards.
	CloseSitting(ctx context.Context, sittingID string) (*CloseSittingResponse, error)

	// CancelSitting cancels a scheduled or suspended sitting.
	CancelSitting(ctx context.Context, sittingID, reason string) error

	// PostponeSitting postpones a scheduled sitting.
	PostponeSitting(ctx context.Context, sittingID, reason string) error

	// GetMinutes retrieves the minutes of a held sitting.
	GetMinutes(ctx context.Context, sittingID string) (*Minutes, error)

	// SittingLog lists the audit trail of a sitting, oldest first.
	SittingLog(ctx context.Context, sittingID string, limit int) ([]*SittingEvent, error)
}

// ScheduleSittingRequest contains parameters for scheduling a sitting.
type ScheduleSittingRequest struct {
	PeriodID    string `json:"period_id"`
	Kind        string `json:"kind"`
	ScheduledAt string `json:"scheduled_at"` // RFC3339
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

// ScheduleSittingResponse contains the result of scheduling a sitting.
type ScheduleSittingResponse struct {
	SittingID string   `json:"sitting_id"`
	Sitting   *Sitting `json:"sitting"`
}

// CloseSittingResponse reports the follow-ups of a closed sitting. Empty
// fields mean the follow-up was skipped or failed; failures are logged.
type CloseSittingResponse struct {
	MinutesRef      string `json:"minutes_ref"`
	NextSittingID   string `json:"next_sitting_id"`
	LinkedMinutesTo string `json:"linked_minutes_to"` // agenda item created on the next sitting
}

// Sitting represents a sitting entity at the port boundary.
type Sitting struct {
	ID              string `json:"id"`
	PeriodID        string `json:"period_id"`
	Kind            string `json:"kind"`
	ScheduledAt     string `json:"scheduled_at"`
	Location        string `json:"location"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
	AgendaPublished bool   `json:"agenda_published"`
	StatusReason    string `json:"status_reason"`
	StartedAt       string `json:"started_at"`
	ClosedAt        string `json:"closed_at"`
	MinutesRef      string `json:"minutes_ref"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// SittingFilters contains filter options for listing sittings.
type SittingFilters struct {
	PeriodID string `json:"period_id"`
	Status   string `json:"status"`
	Limit    int    `json:"limit"`
}

// Minutes represents a held sitting's minutes at the port boundary.
type Minutes struct {
	Ref       string `json:"ref"`
	SittingID string `json:"sitting_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

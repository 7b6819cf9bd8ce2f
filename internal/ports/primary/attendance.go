package primary

import "context"

// AttendanceService defines the primary port for the attendance ledger.
type AttendanceService interface {
	// RecordAttendance stores a legislator's presence mark.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) error

	// GetAttendance lists every eligible legislator with their mark.
	// Legislators never marked are reported absent.
	GetAttendance(ctx context.Context, sittingID string) ([]*AttendanceEntry, error)

	// PresentCount returns how many legislators are marked present.
	PresentCount(ctx context.Context, sittingID string) (int, error)

	// QuorumStatus evaluates presence against the configured quorum rule.
	QuorumStatus(ctx context.Context, sittingID string) (*QuorumStatus, error)
}

// RecordAttendanceRequest contains parameters for marking attendance.
type RecordAttendanceRequest struct {
	SittingID     string `json:"sitting_id"`
	LegislatorID  string `json:"legislator_id"`
	Status        string `json:"status"`
	Justification string `json:"justification"`
}

// AttendanceEntry represents one roll call line at the port boundary.
type AttendanceEntry struct {
	LegislatorID  string `json:"legislator_id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	Justification string `json:"justification"`
	MarkedAt      string `json:"marked_at"`
}

// QuorumStatus summarises presence against the quorum rule.
type QuorumStatus struct {
	SittingID string `json:"sitting_id"`
	Present   int    `json:"present"`
	Eligible  int    `json:"eligible"`
	Required  int    `json:"required"`
	Met       bool   `json:"met"`
	Rule      string `json:"rule"`
}

package primary

// SittingEvent represents one audit trail entry of a sitting.
type SittingEvent struct {
	ID        string `json:"id"`
	SittingID string `json:"sitting_id"`
	ActorID   string `json:"actor_id"`
	Action    string `json:"action"`
	Subject   string `json:"subject"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

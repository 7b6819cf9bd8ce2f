package sitting

import "fmt"

// GenerateSittingID generates a sitting ID from the current max number.
// The format is SES-XXX where XXX is a zero-padded 3-digit number.
func GenerateSittingID(currentMax int) string {
	return fmt.Sprintf("SES-%03d", currentMax+1)
}

// GenerateEventID generates an audit event ID from the current max number.
func GenerateEventID(currentMax int) string {
	return fmt.Sprintf("EVT-%04d", currentMax+1)
}

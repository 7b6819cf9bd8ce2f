package opinion

import "fmt"

// GenerateOpinionID generates a committee opinion ID from the current max number.
func GenerateOpinionID(currentMax int) string {
	return fmt.Sprintf("OP-%03d", currentMax+1)
}

package matter

import "fmt"

// GenerateMatterID generates a matter ID from the current max number.
func GenerateMatterID(currentMax int) string {
	return fmt.Sprintf("MAT-%03d", currentMax+1)
}

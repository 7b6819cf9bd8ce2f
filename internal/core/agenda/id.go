package agenda

import "fmt"

// GenerateItemID generates an agenda item ID from the current max number.
// The format is ITEM-XXX where XXX is a zero-padded 3-digit number.
func GenerateItemID(currentMax int) string {
	return fmt.Sprintf("ITEM-%03d", currentMax+1)
}

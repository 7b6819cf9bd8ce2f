// Package roster contains the pure rules for legislative periods and the
// legislators seated in them.
package roster

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// GeneratePeriodID generates a period ID from the current max number.
func GeneratePeriodID(currentMax int) string {
	return fmt.Sprintf("PER-%03d", currentMax+1)
}

// GenerateLegislatorID generates a legislator ID from the current max number.
func GenerateLegislatorID(currentMax int) string {
	return fmt.Sprintf("LEG-%03d", currentMax+1)
}

// ValidatePeriod checks a period's name and date range.
func ValidatePeriod(name, startsOn, endsOn string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("period name is required")
	}
	start, err := time.Parse(dateLayout, startsOn)
	if err != nil {
		return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", startsOn)
	}
	end, err := time.Parse(dateLayout, endsOn)
	if err != nil {
		return fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", endsOn)
	}
	if !end.After(start) {
		return fmt.Errorf("period must end after it starts (%s..%s)", startsOn, endsOn)
	}
	return nil
}

// Contains reports whether at falls within the period, both ends inclusive.
func Contains(startsOn, endsOn string, at time.Time) bool {
	start, err := time.Parse(dateLayout, startsOn)
	if err != nil {
		return false
	}
	end, err := time.Parse(dateLayout, endsOn)
	if err != nil {
		return false
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}

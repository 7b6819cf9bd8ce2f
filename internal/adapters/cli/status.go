// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorStatus renders a sitting, item, attendance or outcome status with the
// colour the presiding officer's console uses for it.
func colorStatus(status string) string {
	switch status {
	case "in_progress", "voting_in_progress", "present":
		return color.New(color.FgHiGreen).Sprint(status)
	case "approved", "voted", "held", "issued":
		return color.New(color.FgGreen).Sprint(status)
	case "suspended", "postponed", "tied", "pending", "absent_justified", "waived":
		return color.New(color.FgYellow).Sprint(status)
	case "rejected", "cancelled", "withdrawn", "absent":
		return color.New(color.FgRed).Sprint(status)
	case "read":
		return color.New(color.FgCyan).Sprint(status)
	default:
		return status
	}
}

// pad right-aligns plain text before colouring so columns line up.
func pad(status string, width int) string {
	if n := len(status); n < width {
		return colorStatus(status) + strings.Repeat(" ", width-n)
	}
	return colorStatus(status)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func check(ok bool) string {
	if ok {
		return color.New(color.FgHiGreen).Sprint("✓")
	}
	return color.New(color.FgRed).Sprint("✗")
}

const rule = "────────────────────────────────────────────────────────────────"

func header(format string, args ...any) string {
	return color.New(color.Bold).Sprintf(format, args...) + "\n" + rule
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

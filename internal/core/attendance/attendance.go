// Package attendance contains the pure logic of the per-sitting roll call:
// presence statuses, the record guard, roster merging, and quorum policies.
package attendance

import (
	"fmt"
	"strings"

	"github.com/example/plenario/internal/core/fault"
)

// Status is a legislator's presence in a sitting.
type Status string

const (
	StatusPresent         Status = "present"
	StatusAbsent          Status = "absent"
	StatusAbsentJustified Status = "absent_justified"
)

// ParseStatus validates a presence status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPresent, StatusAbsent, StatusAbsentJustified:
		return st, nil
	}
	return "", fmt.Errorf("invalid attendance status %q", s)
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    fault.Kind
	Reason  string
}

// Error converts the guard result to a typed error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fault.New(r.Kind, "%s", r.Reason)
}

// RecordContext provides context for recording attendance.
type RecordContext struct {
	SittingID     string
	SittingStatus string
	LegislatorID  string
	OnRoster      bool
	Status        Status
	Justification string
}

// CanRecordAttendance evaluates whether an attendance mark may be stored.
// Rules:
// - Sitting must be in_progress or held (post-closing corrections)
// - Legislator must be on the sitting period's roster
// - absent_justified requires a justification
func CanRecordAttendance(ctx RecordContext) GuardResult {
	if ctx.SittingStatus != "in_progress" && ctx.SittingStatus != "held" {
		return GuardResult{
			Kind:   fault.InvalidTransition,
			Reason: fmt.Sprintf("cannot record attendance for sitting %s while it is %s", ctx.SittingID, ctx.SittingStatus),
		}
	}
	if !ctx.OnRoster {
		return GuardResult{
			Kind:   fault.NotFound,
			Reason: fmt.Sprintf("legislator %s is not eligible for sitting %s", ctx.LegislatorID, ctx.SittingID),
		}
	}
	if ctx.Status == StatusAbsentJustified && strings.TrimSpace(ctx.Justification) == "" {
		return GuardResult{
			Kind:   fault.Validation,
			Reason: fmt.Sprintf("a justification is required to mark %s as absent_justified", ctx.LegislatorID),
		}
	}
	return GuardResult{Allowed: true}
}

// Entry is one legislator's line in the roll call.
type Entry struct {
	LegislatorID  string
	Status        Status
	Justification string
	Recorded      bool // false when defaulted from the roster
}

// Merge lays explicit records over the eligible roster. Legislators without a
// record default to absent. Records for legislators no longer on the roster
// are dropped. Roster order is preserved.
func Merge(roster []string, records map[string]Entry) []Entry {
	out := make([]Entry, 0, len(roster))
	for _, id := range roster {
		if rec, ok := records[id]; ok {
			rec.LegislatorID = id
			rec.Recorded = true
			out = append(out, rec)
			continue
		}
		out = append(out, Entry{LegislatorID: id, Status: StatusAbsent})
	}
	return out
}

// PresentIDs returns the ids of entries marked present.
func PresentIDs(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Status == StatusPresent {
			out = append(out, e.LegislatorID)
		}
	}
	return out
}

package agenda

import (
	"fmt"

	"github.com/example/plenario/internal/core/fault"
)

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

func deny(kind fault.Kind, format string, args ...any) GuardResult {
	return GuardResult{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// sittingScheduled mirrors sitting.StatusScheduled; agenda must not import sitting.
const sittingScheduled = "scheduled"

// EditContext provides context for structural agenda edits
// (add, remove, reorder, change section).
type EditContext struct {
	SittingID     string
	SittingStatus string
	Published     bool
}

// CanEditAgenda evaluates whether the agenda structure may change.
// Rules:
// - Agenda must not be published
// - Sitting must still be scheduled
func CanEditAgenda(ctx EditContext) GuardResult {
	if ctx.Published {
		return deny(fault.InvalidState, "agenda of sitting %s is published; unpublish it before editing", ctx.SittingID)
	}
	if ctx.SittingStatus != sittingScheduled {
		return deny(fault.InvalidState, "agenda of sitting %s cannot change while sitting is %s", ctx.SittingID, ctx.SittingStatus)
	}
	return GuardResult{Allowed: true}
}

// AddItemContext provides context for adding a matter to an agenda.
type AddItemContext struct {
	EditContext
	MatterID        string
	MatterReady     bool
	AlreadyOnAgenda bool
	// OtherSittingID is the active sitting already carrying the matter, if any.
	OtherSittingID string
}

// CanAddItem evaluates whether a matter may be appended to the agenda.
// Rules:
// - Agenda must be editable
// - Matter must not already be on this agenda
// - Matter must not be on another active sitting's agenda
// - Matter status must be in the ready set
func CanAddItem(ctx AddItemContext) GuardResult {
	if r := CanEditAgenda(ctx.EditContext); !r.Allowed {
		return r
	}
	if ctx.AlreadyOnAgenda {
		return deny(fault.InvalidState, "matter %s is already on the agenda of sitting %s", ctx.MatterID, ctx.SittingID)
	}
	if ctx.OtherSittingID != "" {
		return deny(fault.InvalidState, "matter %s is already on the agenda of sitting %s", ctx.MatterID, ctx.OtherSittingID)
	}
	if !ctx.MatterReady {
		return deny(fault.InvalidState, "matter %s is not ready to be scheduled", ctx.MatterID)
	}
	return GuardResult{Allowed: true}
}

// ValidateReorder checks that ordered is a permutation of the section's items.
func ValidateReorder(items []ItemSummary, section Section, ordered []string) GuardResult {
	want := make(map[string]bool)
	for _, it := range items {
		if it.Section == section {
			want[it.ID] = true
		}
	}
	if len(ordered) != len(want) {
		return deny(fault.Validation, "reorder of %s lists %d items, section has %d", section, len(ordered), len(want))
	}
	seen := make(map[string]bool, len(ordered))
	for _, id := range ordered {
		if !want[id] {
			return deny(fault.Validation, "item %s is not in section %s", id, section)
		}
		if seen[id] {
			return deny(fault.Validation, "item %s listed twice", id)
		}
		seen[id] = true
	}
	return GuardResult{Allowed: true}
}

// PublishContext provides context for publish/unpublish guards.
type PublishContext struct {
	SittingID     string
	SittingStatus string
	Published     bool
	ItemCount     int
}

// CanPublish evaluates whether the agenda can be published.
// Rules:
// - Not already published
// - Sitting must be scheduled
// - At least one item
func CanPublish(ctx PublishContext) GuardResult {
	if ctx.Published {
		return deny(fault.AlreadyPublished, "agenda of sitting %s is already published", ctx.SittingID)
	}
	if ctx.SittingStatus != sittingScheduled {
		return deny(fault.InvalidState, "cannot publish agenda of sitting %s while it is %s", ctx.SittingID, ctx.SittingStatus)
	}
	if ctx.ItemCount == 0 {
		return deny(fault.InvalidState, "cannot publish empty agenda of sitting %s", ctx.SittingID)
	}
	return GuardResult{Allowed: true}
}

// CanUnpublish evaluates whether a published agenda can be reopened.
// Rules:
// - Sitting must still be scheduled
// - Agenda must be published
func CanUnpublish(ctx PublishContext) GuardResult {
	if ctx.SittingStatus != sittingScheduled {
		return deny(fault.InvalidState, "cannot unpublish agenda of sitting %s while it is %s", ctx.SittingID, ctx.SittingStatus)
	}
	if !ctx.Published {
		return deny(fault.InvalidState, "agenda of sitting %s is not published", ctx.SittingID)
	}
	return GuardResult{Allowed: true}
}

// ConductContext provides context for per-item conduction outside voting
// (read, postpone, withdraw).
type ConductContext struct {
	ItemID            string
	SittingStatus     string
	SittingInProgress bool
	Status            ItemStatus
	RequiresVote      bool
}

// CanMarkRead evaluates whether an item can be marked read.
// Rules:
// - Sitting in progress, item pending
// - Matter must not require a vote
func CanMarkRead(ctx ConductContext) GuardResult {
	if r := canConduct(ctx, "mark read"); !r.Allowed {
		return r
	}
	if ctx.RequiresVote {
		return deny(fault.InvalidState, "item %s requires a vote and cannot be marked read", ctx.ItemID)
	}
	return GuardResult{Allowed: true}
}

// CanPostponeItem evaluates whether an item can be postponed (adiado).
func CanPostponeItem(ctx ConductContext) GuardResult {
	return canConduct(ctx, "postpone")
}

// CanWithdrawItem evaluates whether an item can be withdrawn (retirado de pauta).
func CanWithdrawItem(ctx ConductContext) GuardResult {
	return canConduct(ctx, "withdraw")
}

func canConduct(ctx ConductContext, action string) GuardResult {
	if !ctx.SittingInProgress {
		return deny(fault.InvalidState, "cannot %s item %s: sitting is %s, not in_progress", action, ctx.ItemID, ctx.SittingStatus)
	}
	if ctx.Status != ItemPending {
		return deny(fault.InvalidState, "cannot %s item %s: item is %s", action, ctx.ItemID, ctx.Status)
	}
	return GuardResult{Allowed: true}
}

package sitting

import (
	"fmt"
	"strings"

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

// TransitionContext provides the facts a lifecycle guard evaluates.
// Populated by the caller with the sitting aggregate's current state.
type TransitionContext struct {
	SittingID       string
	Status          Status
	AgendaPublished bool
	ItemCount       int
	OpenItemID      string   // item currently being voted, empty if none
	UnfinishedItems []string // items not in a terminal status
	Reason          string   // administrative reason for cancel/postpone
}

// CanTransition evaluates whether action may be applied to the sitting.
// Rules:
// - The (status, action) pair must exist in the lifecycle
// - start: agenda published with at least one item
// - suspend: no item may be under voting
// - close: every item terminal
// - cancel/postpone: a reason is required
func CanTransition(ctx TransitionContext, action Action) GuardResult {
	if _, ok := Next(ctx.Status, action); !ok {
		return deny(fault.InvalidTransition, "cannot %s sitting %s: transition from %s to %s is not allowed",
			action, ctx.SittingID, ctx.Status, Target(action))
	}

	switch action {
	case ActionStart:
		if !ctx.AgendaPublished {
			return deny(fault.InvalidTransition, "cannot start sitting %s: agenda is not published", ctx.SittingID)
		}
		if ctx.ItemCount == 0 {
			return deny(fault.InvalidTransition, "cannot start sitting %s: agenda has no items", ctx.SittingID)
		}
	case ActionSuspend:
		if ctx.OpenItemID != "" {
			return deny(fault.InvalidState, "cannot suspend sitting %s: voting on %s is open; close it first", ctx.SittingID, ctx.OpenItemID)
		}
	case ActionClose:
		if len(ctx.UnfinishedItems) > 0 {
			return deny(fault.InvalidTransition, "cannot close sitting %s: %d item(s) unfinished (%s)",
				ctx.SittingID, len(ctx.UnfinishedItems), strings.Join(ctx.UnfinishedItems, ", "))
		}
	case ActionCancel, ActionPostpone:
		if strings.TrimSpace(ctx.Reason) == "" {
			return deny(fault.Validation, "a reason is required to %s sitting %s", action, ctx.SittingID)
		}
	}

	return GuardResult{Allowed: true}
}

// DeleteContext provides context for sitting deletion guards.
type DeleteContext struct {
	SittingID       string
	Status          Status
	AgendaPublished bool
}

// CanDeleteSitting evaluates whether a sitting record may be removed.
// Rule: only scheduled sittings with an unpublished agenda; anything that
// reached conduction is kept and re-categorised instead.
func CanDeleteSitting(ctx DeleteContext) GuardResult {
	if ctx.Status != StatusScheduled {
		return deny(fault.InvalidState, "sitting %s is %s and cannot be deleted; cancel it instead", ctx.SittingID, ctx.Status)
	}
	if ctx.AgendaPublished {
		return deny(fault.InvalidState, "sitting %s has a published agenda; unpublish it before deleting", ctx.SittingID)
	}
	return GuardResult{Allowed: true}
}

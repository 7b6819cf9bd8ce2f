// Package sitting contains the pure business logic for the sitting lifecycle.
// This is part of the Functional Core - no I/O, only pure functions.
package sitting

import (
	"fmt"
	"time"
)

// Status represents the possible states of a sitting.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusHeld       Status = "held"
	StatusCancelled  Status = "cancelled"
	StatusPostponed  Status = "postponed"
	StatusSuspended  Status = "suspended"
)

// Kind is the type of sitting being convened.
type Kind string

const (
	KindOrdinary      Kind = "ordinary"
	KindExtraordinary Kind = "extraordinary"
	KindSolemn        Kind = "solemn"
)

// ParseKind validates a sitting kind string.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindOrdinary, KindExtraordinary, KindSolemn:
		return k, nil
	}
	return "", fmt.Errorf("invalid sitting kind %q (want ordinary, extraordinary or solemn)", s)
}

// Action names a lifecycle operation.
type Action string

const (
	ActionStart    Action = "start"
	ActionSuspend  Action = "suspend"
	ActionResume   Action = "resume"
	ActionClose    Action = "close"
	ActionCancel   Action = "cancel"
	ActionPostpone Action = "postpone"
)

// transitions lists every legal (from, action) pair and its target.
var transitions = map[Status]map[Action]Status{
	StatusScheduled: {
		ActionStart:    StatusInProgress,
		ActionCancel:   StatusCancelled,
		ActionPostpone: StatusPostponed,
	},
	StatusInProgress: {
		ActionSuspend: StatusSuspended,
		ActionClose:   StatusHeld,
	},
	StatusSuspended: {
		ActionResume: StatusInProgress,
		ActionCancel: StatusCancelled,
	},
}

// Target returns the status an action leads to regardless of the current
// status, used when naming the attempted target in failures.
func Target(a Action) Status {
	switch a {
	case ActionStart, ActionResume:
		return StatusInProgress
	case ActionSuspend:
		return StatusSuspended
	case ActionClose:
		return StatusHeld
	case ActionCancel:
		return StatusCancelled
	case ActionPostpone:
		return StatusPostponed
	}
	return ""
}

// Next returns the target of applying a to from. ok is false when the
// transition is not in the lifecycle.
func Next(from Status, a Action) (to Status, ok bool) {
	to, ok = transitions[from][a]
	return to, ok
}

// IsTerminal reports whether no further transition leaves the status.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// IsActive reports whether a sitting in this status holds its agenda's matters
// against double scheduling.
func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusInProgress
}

// InitialStatus returns the status for a newly scheduled sitting.
func InitialStatus() Status {
	return StatusScheduled
}

// TransitionResult captures the new status and timestamp side effects.
type TransitionResult struct {
	NewStatus Status
	StartedAt *time.Time // set on the first start
	ClosedAt  *time.Time // set when the sitting is held, cancelled or postponed
}

// ApplyTransition returns the result of moving into status to.
// The caller passes the current time to enable testing.
func ApplyTransition(from, to Status, now time.Time) TransitionResult {
	result := TransitionResult{NewStatus: to}
	if from == StatusScheduled && to == StatusInProgress {
		result.StartedAt = &now
	}
	if IsTerminal(to) {
		result.ClosedAt = &now
	}
	return result
}

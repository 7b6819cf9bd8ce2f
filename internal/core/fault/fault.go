// Package fault defines the typed failures surfaced by conduction operations.
// Every layer returns a *Error so callers can branch on Kind instead of
// matching message text.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	Validation        Kind = "validation"
	InvalidState      Kind = "invalid_state"
	InvalidTransition Kind = "invalid_transition"
	QuorumNotMet      Kind = "quorum_not_met"
	OpinionPending    Kind = "opinion_pending"
	InCommittee       Kind = "in_committee"
	NotPresent        Kind = "not_present"
	NotVoting         Kind = "not_voting"
	AlreadyPublished  Kind = "already_published"
	NotFound          Kind = "not_found"
)

// Error is a classified failure. Two errors match under errors.Is when their
// kinds are equal and the target carries no message of its own.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is reports whether target is a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Kind: Validation}
	ErrInvalidState      = &Error{Kind: InvalidState}
	ErrInvalidTransition = &Error{Kind: InvalidTransition}
	ErrQuorumNotMet      = &Error{Kind: QuorumNotMet}
	ErrOpinionPending    = &Error{Kind: OpinionPending}
	ErrInCommittee       = &Error{Kind: InCommittee}
	ErrNotPresent        = &Error{Kind: NotPresent}
	ErrNotVoting         = &Error{Kind: NotVoting}
	ErrAlreadyPublished  = &Error{Kind: AlreadyPublished}
	ErrNotFound          = &Error{Kind: NotFound}
)

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf is shorthand for New(NotFound, ...), the most common repository failure.
func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

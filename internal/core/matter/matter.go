// Package matter contains the pure business logic for legislative matters:
// the closed set of matter kinds, their voting/opinion capabilities, and the
// status a matter takes after it has been handled in a sitting.
package matter

import (
	"fmt"

	"github.com/example/plenario/internal/core/tally"
)

// Kind is the closed set of matter kinds handled by the chamber.
type Kind string

const (
	KindBill           Kind = "bill"            // projeto de lei
	KindResolution     Kind = "resolution"      // projeto de resolução
	KindDecree         Kind = "decree"          // projeto de decreto legislativo
	KindVeto           Kind = "veto"            // veto do executivo
	KindMotion         Kind = "motion"          // moção
	KindRequest        Kind = "request"         // requerimento
	KindIndication     Kind = "indication"      // indicação
	KindOfficialLetter Kind = "official_letter" // ofício
	KindCommunication  Kind = "communication"   // comunicado
	KindMinutes        Kind = "minutes"         // ata
)

// Capabilities describes what conduction path a matter kind follows.
type Capabilities struct {
	RequiresVote    bool
	RequiresOpinion bool
}

var capabilities = map[Kind]Capabilities{
	KindBill:           {RequiresVote: true, RequiresOpinion: true},
	KindResolution:     {RequiresVote: true, RequiresOpinion: true},
	KindDecree:         {RequiresVote: true, RequiresOpinion: true},
	KindVeto:           {RequiresVote: true, RequiresOpinion: true},
	KindMotion:         {RequiresVote: true},
	KindRequest:        {RequiresVote: true},
	KindIndication:     {},
	KindOfficialLetter: {},
	KindCommunication:  {},
	KindMinutes:        {},
}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := capabilities[k]; !ok {
		return "", fmt.Errorf("unknown matter kind %q", s)
	}
	return k, nil
}

// Kinds returns every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindBill, KindResolution, KindDecree, KindVeto, KindMotion,
		KindRequest, KindIndication, KindOfficialLetter, KindCommunication, KindMinutes,
	}
}

// CapabilitiesOf resolves the capabilities of a kind. Unknown kinds have none.
func CapabilitiesOf(k Kind) Capabilities {
	return capabilities[k]
}

// Status represents the lifecycle status of a matter.
type Status string

const (
	StatusFiled       Status = "filed"
	StatusInProcess   Status = "in_process"
	StatusInCommittee Status = "in_committee"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusRead        Status = "read"
	StatusArchived    Status = "archived"
)

// ParseStatus validates a matter status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusFiled, StatusInProcess, StatusInCommittee, StatusApproved,
		StatusRejected, StatusRead, StatusArchived:
		return st, nil
	}
	return "", fmt.Errorf("unknown matter status %q", s)
}

// InitialStatus returns the status of a newly filed matter.
func InitialStatus() Status {
	return StatusFiled
}

// IsReady reports whether a matter in this status may be put on an agenda.
func IsReady(s Status) bool {
	return s == StatusFiled || s == StatusInProcess
}

// ReadyStatuses lists the statuses accepted by IsReady.
func ReadyStatuses() []Status {
	return []Status{StatusFiled, StatusInProcess}
}

// StatusAfterVote maps a closed tally outcome, already passed through the
// tie-break policy, to the matter's next status. ok is false when the matter
// keeps its current status.
func StatusAfterVote(outcome tally.Outcome) (next Status, ok bool) {
	switch outcome {
	case tally.OutcomeApproved:
		return StatusApproved, true
	case tally.OutcomeRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

// StatusAfterRead is the status of a non-voted matter once read in plenary.
func StatusAfterRead() Status {
	return StatusRead
}

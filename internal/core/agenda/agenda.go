// Package agenda contains the pure business logic for a sitting's agenda
// (pauta): sections, item statuses, ordering, and the edit/publish guards.
package agenda

import (
	"fmt"
	"sort"

	"github.com/example/plenario/internal/core/tally"
)

// Section is the part of the sitting an item belongs to.
type Section string

const (
	SectionExpediente          Section = "expediente"           // formal communications
	SectionOrdemDoDia          Section = "ordem_do_dia"         // order of business
	SectionExplicacoesPessoais Section = "explicacoes_pessoais" // personal remarks
)

// Sections returns the sections in the order they are conducted.
func Sections() []Section {
	return []Section{SectionExpediente, SectionOrdemDoDia, SectionExplicacoesPessoais}
}

// ParseSection validates a section string.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections() {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("invalid agenda section %q", s)
}

// SectionRank orders sections for display and conduction.
func SectionRank(s Section) int {
	for i, sec := range Sections() {
		if sec == s {
			return i
		}
	}
	return len(Sections())
}

// ItemStatus represents the conduction status of an agenda item.
type ItemStatus string

const (
	ItemPending          ItemStatus = "pending"
	ItemRead             ItemStatus = "read"
	ItemVotingInProgress ItemStatus = "voting_in_progress"
	ItemVoted            ItemStatus = "voted"
	ItemPostponed        ItemStatus = "postponed"
	ItemWithdrawn        ItemStatus = "withdrawn"
)

// IsTerminal reports whether an item needs no further handling in the sitting.
func IsTerminal(s ItemStatus) bool {
	switch s {
	case ItemVoted, ItemRead, ItemPostponed, ItemWithdrawn:
		return true
	}
	return false
}

// TallyState derives the voting state machine position from an item status.
func TallyState(s ItemStatus) tally.State {
	switch s {
	case ItemVotingInProgress:
		return tally.StateOpen
	case ItemVoted:
		return tally.StateClosed
	case ItemPending:
		return tally.StateNotStarted
	default:
		// read/postponed/withdrawn items will never be voted in this sitting
		return tally.StateClosed
	}
}

// ItemSummary contains minimal item info for guard evaluation.
type ItemSummary struct {
	ID       string
	MatterID string
	Section  Section
	Position int
	Status   ItemStatus
}

// NextPosition returns the position for an item appended to section.
func NextPosition(items []ItemSummary, section Section) int {
	highest := 0
	for _, it := range items {
		if it.Section == section && it.Position > highest {
			highest = it.Position
		}
	}
	return highest + 1
}

// Renumber returns the ids of section's items in their current order after
// excluding skipID, so callers can rewrite positions as 1..n.
func Renumber(items []ItemSummary, section Section, skipID string) []string {
	var in []ItemSummary
	for _, it := range items {
		if it.Section == section && it.ID != skipID {
			in = append(in, it)
		}
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].Position < in[j].Position })
	ids := make([]string, len(in))
	for i, it := range in {
		ids[i] = it.ID
	}
	return ids
}

// OpenItem returns the id of the item currently being voted, or "".
func OpenItem(items []ItemSummary) string {
	for _, it := range items {
		if it.Status == ItemVotingInProgress {
			return it.ID
		}
	}
	return ""
}

// Unfinished returns the ids of items that are not in a terminal status.
func Unfinished(items []ItemSummary) []string {
	var out []string
	for _, it := range items {
		if !IsTerminal(it.Status) {
			out = append(out, it.ID)
		}
	}
	return out
}

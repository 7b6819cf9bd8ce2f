package sitting

import (
	"testing"
	"time"
)

func TestNext(t *testing.T) {
	all := []Status{StatusScheduled, StatusInProgress, StatusHeld, StatusCancelled, StatusPostponed, StatusSuspended}
	actions := []Action{ActionStart, ActionSuspend, ActionResume, ActionClose, ActionCancel, ActionPostpone}

	legal := map[Status]map[Action]Status{
		StatusScheduled:  {ActionStart: StatusInProgress, ActionCancel: StatusCancelled, ActionPostpone: StatusPostponed},
		StatusInProgress: {ActionSuspend: StatusSuspended, ActionClose: StatusHeld},
		StatusSuspended:  {ActionResume: StatusInProgress, ActionCancel: StatusCancelled},
	}

	for _, from := range all {
		for _, a := range actions {
			to, ok := Next(from, a)
			want, wantOK := legal[from][a]
			if ok != wantOK || to != want {
				t.Errorf("Next(%s, %s) = (%q, %v), want (%q, %v)", from, a, to, ok, want, wantOK)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	tests := map[Status]bool{
		StatusScheduled:  false,
		StatusInProgress: false,
		StatusSuspended:  false,
		StatusHeld:       true,
		StatusCancelled:  true,
		StatusPostponed:  true,
	}
	for s, want := range tests {
		if got := IsTerminal(s); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestApplyTransition(t *testing.T) {
	fixedTime := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		from, to    Status
		wantStarted bool
		wantClosed  bool
	}{
		{"start sets StartedAt", StatusScheduled, StatusInProgress, true, false},
		{"resume keeps StartedAt", StatusSuspended, StatusInProgress, false, false},
		{"suspend", StatusInProgress, StatusSuspended, false, false},
		{"close sets ClosedAt", StatusInProgress, StatusHeld, false, true},
		{"cancel sets ClosedAt", StatusSuspended, StatusCancelled, false, true},
		{"postpone sets ClosedAt", StatusScheduled, StatusPostponed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyTransition(tt.from, tt.to, fixedTime)
			if result.NewStatus != tt.to {
				t.Errorf("NewStatus = %q, want %q", result.NewStatus, tt.to)
			}
			if (result.StartedAt != nil) != tt.wantStarted {
				t.Errorf("StartedAt = %v, want set=%v", result.StartedAt, tt.wantStarted)
			}
			if (result.ClosedAt != nil) != tt.wantClosed {
				t.Errorf("ClosedAt = %v, want set=%v", result.ClosedAt, tt.wantClosed)
			}
			if result.ClosedAt != nil && !result.ClosedAt.Equal(fixedTime) {
				t.Errorf("ClosedAt = %v, want %v", result.ClosedAt, fixedTime)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"ordinary", "extraordinary", "solemn"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) error = %v", s, err)
		}
	}
	if _, err := ParseKind("Ordinária"); err == nil {
		t.Error("ParseKind() accepted display text")
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusScheduled {
		t.Errorf("InitialStatus() = %q, want %q", got, StatusScheduled)
	}
}

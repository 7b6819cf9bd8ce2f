package attendance

import (
	"reflect"
	"testing"

	"github.com/example/plenario/internal/core/fault"
)

func TestCanRecordAttendance(t *testing.T) {
	tests := []struct {
		name     string
		ctx      RecordContext
		wantKind fault.Kind
	}{
		{
			name: "present during sitting",
			ctx:  RecordContext{SittingID: "SES-001", SittingStatus: "in_progress", LegislatorID: "LEG-001", OnRoster: true, Status: StatusPresent},
		},
		{
			name: "correction after held",
			ctx:  RecordContext{SittingID: "SES-001", SittingStatus: "held", LegislatorID: "LEG-001", OnRoster: true, Status: StatusAbsent},
		},
		{
			name:     "scheduled sitting",
			ctx:      RecordContext{SittingID: "SES-001", SittingStatus: "scheduled", LegislatorID: "LEG-001", OnRoster: true, Status: StatusPresent},
			wantKind: fault.InvalidTransition,
		},
		{
			name:     "suspended sitting",
			ctx:      RecordContext{SittingID: "SES-001", SittingStatus: "suspended", LegislatorID: "LEG-001", OnRoster: true, Status: StatusPresent},
			wantKind: fault.InvalidTransition,
		},
		{
			name:     "not on roster",
			ctx:      RecordContext{SittingID: "SES-001", SittingStatus: "in_progress", LegislatorID: "LEG-099", Status: StatusPresent},
			wantKind: fault.NotFound,
		},
		{
			name:     "justified absence without text",
			ctx:      RecordContext{SittingID: "SES-001", SittingStatus: "in_progress", LegislatorID: "LEG-001", OnRoster: true, Status: StatusAbsentJustified},
			wantKind: fault.Validation,
		},
		{
			name: "justified absence with text",
			ctx: RecordContext{SittingID: "SES-001", SittingStatus: "in_progress", LegislatorID: "LEG-001", OnRoster: true,
				Status: StatusAbsentJustified, Justification: "medical leave"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRecordAttendance(tt.ctx)
			if tt.wantKind == "" {
				if !result.Allowed {
					t.Errorf("CanRecordAttendance() denied: %s", result.Reason)
				}
				return
			}
			if result.Allowed || result.Kind != tt.wantKind {
				t.Errorf("CanRecordAttendance() = %+v, want kind %q", result, tt.wantKind)
			}
		})
	}
}

func TestMergeDefaultsToAbsent(t *testing.T) {
	roster := []string{"LEG-001", "LEG-002", "LEG-003"}
	records := map[string]Entry{
		"LEG-002": {Status: StatusPresent},
		"LEG-003": {Status: StatusAbsentJustified, Justification: "travel"},
		"LEG-009": {Status: StatusPresent}, // left the roster
	}

	got := Merge(roster, records)
	want := []Entry{
		{LegislatorID: "LEG-001", Status: StatusAbsent},
		{LegislatorID: "LEG-002", Status: StatusPresent, Recorded: true},
		{LegislatorID: "LEG-003", Status: StatusAbsentJustified, Justification: "travel", Recorded: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}

	if ids := PresentIDs(got); !reflect.DeepEqual(ids, []string{"LEG-002"}) {
		t.Errorf("PresentIDs() = %v", ids)
	}
}

func TestQuorumPolicies(t *testing.T) {
	tests := []struct {
		rule     string
		minimum  int
		eligible int
		present  int
		wantReq  int
		wantMet  bool
	}{
		{"fixed", 5, 9, 5, 5, true},
		{"fixed", 5, 9, 3, 5, false},
		{"", 3, 9, 3, 3, true},
		{"majority", 0, 9, 5, 5, true},
		{"majority", 0, 10, 5, 6, false},
	}

	for _, tt := range tests {
		p, err := ParseQuorumPolicy(tt.rule, tt.minimum)
		if err != nil {
			t.Fatalf("ParseQuorumPolicy(%q) error = %v", tt.rule, err)
		}
		q := Evaluate(p, tt.present, tt.eligible)
		if q.Required != tt.wantReq || q.Met != tt.wantMet {
			t.Errorf("%s/%d: Evaluate() = %+v, want required %d met %v", tt.rule, tt.eligible, q, tt.wantReq, tt.wantMet)
		}
	}

	if _, err := ParseQuorumPolicy("two-thirds", 0); err == nil {
		t.Error("ParseQuorumPolicy() accepted unknown rule")
	}
	if _, err := ParseQuorumPolicy("fixed", -1); err == nil {
		t.Error("ParseQuorumPolicy() accepted negative minimum")
	}
}

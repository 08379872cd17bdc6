package domain

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from CaseStatus
		to   CaseStatus
		want bool
	}{
		{"scheduled to completed", StatusScheduled, StatusCompleted, true},
		{"scheduled to pending approval", StatusScheduled, StatusPendingApproval, true},
		{"scheduled to hired", StatusScheduled, StatusHired, false},
		{"completed to pending approval", StatusCompleted, StatusPendingApproval, true},
		{"completed to scheduled", StatusCompleted, StatusScheduled, false},
		{"pending approval to hired", StatusPendingApproval, StatusHired, true},
		{"pending approval to rejected", StatusPendingApproval, StatusRejected, true},
		{"pending approval to completed", StatusPendingApproval, StatusCompleted, false},
		{"hired is terminal", StatusHired, StatusPendingApproval, false},
		{"rejected is terminal", StatusRejected, StatusPendingApproval, false},
		{"unknown status has no edges", CaseStatus("bogus"), StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []CaseStatus{StatusScheduled, StatusCompleted, StatusPendingApproval} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []CaseStatus{StatusHired, StatusRejected} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

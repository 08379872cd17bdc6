package domain

import (
	"errors"
	"time"
)

// CaseStatus represents the lifecycle state of a hiring case.
type CaseStatus string

const (
	StatusScheduled       CaseStatus = "scheduled"
	StatusCompleted       CaseStatus = "completed"
	StatusPendingApproval CaseStatus = "pending_approval"
	StatusRejected        CaseStatus = "rejected"
	StatusHired           CaseStatus = "hired"
)

// validTransitions defines the allowed state machine transitions.
// rejected and hired are terminal and have no outgoing edges.
var validTransitions = map[CaseStatus][]CaseStatus{
	StatusScheduled:       {StatusCompleted, StatusPendingApproval},
	StatusCompleted:       {StatusPendingApproval},
	StatusPendingApproval: {StatusHired, StatusRejected},
}

var ErrValidation = errors.New("invalid input")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrCaseNotFound = errors.New("hiring case not found")
var ErrTokenNotFound = errors.New("link token not found")
var ErrForbidden = errors.New("access forbidden")
var ErrBotNotConfigured = errors.New("messaging bot not configured")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s CaseStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusHired
}

// HiringCase is the core aggregate: one candidate's progression from
// interview scheduling through the hire/reject decision.
//
// EmployeeID is non-empty if and only if Status is hired; the approval
// path sets status, approver and employee reference in one write.
type HiringCase struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	CandidateName string     `json:"candidate_name" bson:"candidate_name"`
	Phone         string     `json:"phone" bson:"phone"`
	Workshop      string     `json:"workshop" bson:"workshop"`
	InterviewAt   time.Time  `json:"interview_at" bson:"interview_at"`
	Notes         string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Status        CaseStatus `json:"status" bson:"status"`
	// ChatID is the messaging provider's identifier for the candidate's
	// chat session, mirrored from the link token once linked.
	ChatID       string    `json:"chat_id,omitempty" bson:"chat_id,omitempty"`
	HRManagerID  string    `json:"hr_manager_id" bson:"hr_manager_id"`
	ApprovedByID string    `json:"approved_by_id,omitempty" bson:"approved_by_id,omitempty"`
	EmployeeID   string    `json:"employee_id,omitempty" bson:"employee_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

package handler

import (
	"time"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createCaseRequest struct {
	CandidateName string    `json:"candidate_name" validate:"required"`
	Phone         string    `json:"phone"          validate:"required"`
	Workshop      string    `json:"workshop"       validate:"required"`
	InterviewAt   time.Time `json:"interview_at"   validate:"required"`
	Notes         string    `json:"notes"`
}

// editCaseRequest carries the full editable field set; the HR form
// always submits every field.
type editCaseRequest struct {
	CandidateName string    `json:"candidate_name" validate:"required"`
	Phone         string    `json:"phone"          validate:"required"`
	Workshop      string    `json:"workshop"       validate:"required"`
	InterviewAt   time.Time `json:"interview_at"   validate:"required"`
	Notes         string    `json:"notes"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON
// contract is not coupled to internal service changes.

type caseResponse struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidate_name"`
	Phone         string    `json:"phone"`
	Workshop      string    `json:"workshop"`
	InterviewAt   time.Time `json:"interview_at"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	ChatLinked    bool      `json:"chat_linked"`
	HRManagerID   string    `json:"hr_manager_id,omitempty"`
	ApprovedByID  string    `json:"approved_by_id,omitempty"`
	EmployeeID    string    `json:"employee_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type listCasesResponse struct {
	Data  []caseResponse `json:"data"`
	Total int            `json:"total"`
}

type inviteResponse struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

// toCaseResponse maps the domain aggregate to the wire shape. The raw
// chat identifier stays internal; clients only learn whether a channel
// is linked.
func toCaseResponse(hc *domain.HiringCase) caseResponse {
	return caseResponse{
		ID:            hc.ID,
		CandidateName: hc.CandidateName,
		Phone:         hc.Phone,
		Workshop:      hc.Workshop,
		InterviewAt:   hc.InterviewAt,
		Notes:         hc.Notes,
		Status:        string(hc.Status),
		ChatLinked:    hc.ChatID != "",
		HRManagerID:   hc.HRManagerID,
		ApprovedByID:  hc.ApprovedByID,
		EmployeeID:    hc.EmployeeID,
		CreatedAt:     hc.CreatedAt,
		UpdatedAt:     hc.UpdatedAt,
	}
}

package ports

import (
	"context"
	"time"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   string
	Name string
	Role string
}

// CreateCaseInput carries all data needed to open a hiring case.
type CreateCaseInput struct {
	CandidateName string
	Phone         string
	Workshop      string
	InterviewAt   time.Time
	Notes         string
}

// EditCaseInput carries the editable fields of a case. All fields are
// written as given (the HR form always submits the full set).
type EditCaseInput struct {
	CandidateName string
	Phone         string
	Workshop      string
	InterviewAt   time.Time
	Notes         string
}

// CaseService defines the HR-facing use cases of the onboarding pipeline.
type CaseService interface {
	Create(ctx context.Context, actor Actor, in CreateCaseInput) (*domain.HiringCase, error)
	Edit(ctx context.Context, actor Actor, caseID string, in EditCaseInput) (*domain.HiringCase, error)
	// Complete marks the interview as held (scheduled -> completed).
	Complete(ctx context.Context, actor Actor, caseID string) (*domain.HiringCase, error)
	// SubmitForApproval moves a pre-terminal case to pending_approval.
	SubmitForApproval(ctx context.Context, actor Actor, caseID string) (*domain.HiringCase, error)
	Get(ctx context.Context, actor Actor, caseID string) (*domain.HiringCase, error)
	List(ctx context.Context, actor Actor, filter ListCasesFilter) ([]*domain.HiringCase, error)
}

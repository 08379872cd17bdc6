package ports

import (
	"context"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// ListCasesFilter carries query parameters for listing hiring cases.
type ListCasesFilter struct {
	Status string // optional: filter by case status
	Search string // optional: partial match on candidate name or phone
}

// CaseRepository defines persistence operations for hiring cases.
//
// SetStatus and MarkHired are compare-and-swap writes: the update is
// applied only when the stored status still equals from, so a concurrent
// transition can never be overwritten. Both return
// domain.ErrInvalidTransition when the guard does not match.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.HiringCase) error
	FindByID(ctx context.Context, id string) (*domain.HiringCase, error)
	// Update persists the editable fields (name, phone, workshop,
	// interview time, notes). Status and references are never touched.
	Update(ctx context.Context, c *domain.HiringCase) error
	SetStatus(ctx context.Context, id string, from, to domain.CaseStatus) error
	// MarkHired atomically sets status hired, the approver reference and
	// the employee identity reference in a single write.
	MarkHired(ctx context.Context, id string, from domain.CaseStatus, approvedByID, employeeID string) error
	// SetChatID records (or clears, with an empty value) the linked
	// channel identity on the case.
	SetChatID(ctx context.Context, id, chatID string) error
	List(ctx context.Context, filter ListCasesFilter) ([]*domain.HiringCase, error)
}

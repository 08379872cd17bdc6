package ports

import (
	"context"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// ApproveResult is returned by the administrator approval action.
//
// PlainSecret is populated only when the credential was not delivered to
// a linked channel (no channel yet, or the send failed); it is shown to
// the administrator exactly once for manual relay and exists nowhere else.
type ApproveResult struct {
	Case        *domain.HiringCase
	Login       string
	PlainSecret string
	// Delivered is true when the credential message was accepted by the
	// messaging provider.
	Delivered bool
	// DeliveryDeferred is true when no channel is linked yet; the
	// candidate will receive credentials on linking.
	DeliveryDeferred bool
}

// ApprovalService is the administrator-facing side of the pipeline.
type ApprovalService interface {
	Approve(ctx context.Context, actor Actor, caseID string) (*ApproveResult, error)
	Reject(ctx context.Context, actor Actor, caseID string) (*domain.HiringCase, error)
	ListPending(ctx context.Context, actor Actor) ([]*domain.HiringCase, error)
}

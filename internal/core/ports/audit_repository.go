package ports

import (
	"context"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// AuditRepository is the append-only audit trail. Entries are never
// updated or removed.
type AuditRepository interface {
	Append(ctx context.Context, e *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

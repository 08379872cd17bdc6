package ports

import (
	"context"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// IdentityRepository defines persistence for provisioned accounts.
// Create returns domain.ErrIdentityConflict when the login is taken.
type IdentityRepository interface {
	Create(ctx context.Context, id *domain.EmployeeIdentity) error
	FindByID(ctx context.Context, id string) (*domain.EmployeeIdentity, error)
	FindByLogin(ctx context.Context, login string) (*domain.EmployeeIdentity, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	// UpdateSecret replaces the stored verifier; used on credential rotation.
	UpdateSecret(ctx context.Context, id, secretHash string) error
	SetActive(ctx context.Context, id string, active bool) error
}

// AccessRepository defines persistence for zone access grants.
type AccessRepository interface {
	// Upsert creates or replaces the grant for (employee, zone).
	Upsert(ctx context.Context, a *domain.EmployeeZoneAccess) error
	FindActive(ctx context.Context, employeeID string) ([]*domain.EmployeeZoneAccess, error)
	// Revoke deactivates the grant for (employee, zone); missing grants
	// are a no-op.
	Revoke(ctx context.Context, employeeID, zone string) error
}

package ports

import (
	"context"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

// AuthService verifies provisioned credentials and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, login, secret string) (token string, identity *domain.EmployeeIdentity, err error)
}

// Authorizer is the capability check injected into each service entry
// point, keeping authorization orthogonal to the state machine. Require
// returns domain.ErrForbidden when the actor may not perform the action.
type Authorizer interface {
	Require(actor Actor, action string) error
}

// AccessService owns zone access grants and the shift-assignment gating
// rule consuming the provisioned employee identity.
type AccessService interface {
	Grant(ctx context.Context, actor Actor, employeeID, zone, level string) (*domain.EmployeeZoneAccess, error)
	Revoke(ctx context.Context, actor Actor, employeeID, zone string) error
	// CanAssign reports whether the employee holds an active grant for
	// the zone.
	CanAssign(ctx context.Context, employeeID, zone string) (bool, error)
	ListFor(ctx context.Context, employeeID string) ([]*domain.EmployeeZoneAccess, error)
}

// IdentityService exposes the administrator account controls that sit on
// top of provisioned identities.
type IdentityService interface {
	Lock(ctx context.Context, actor Actor, identityID string) error
	Unlock(ctx context.Context, actor Actor, identityID string) error
}

package service

import (
	"fmt"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// Capability actions checked at service entry points.
const (
	ActionCaseCreate   = "case.create"
	ActionCaseEdit     = "case.edit"
	ActionCaseSubmit   = "case.submit"
	ActionCaseRead     = "case.read"
	ActionCaseInvite   = "case.invite"
	ActionCaseApprove  = "case.approve"
	ActionCaseReject   = "case.reject"
	ActionIdentityLock = "identity.lock"
	ActionAccessGrant  = "access.grant"
	ActionAccessRevoke = "access.revoke"
)

// rolePolicy maps each action to the roles allowed to perform it.
var rolePolicy = map[string][]string{
	ActionCaseCreate:   {domain.RoleHR},
	ActionCaseEdit:     {domain.RoleHR},
	ActionCaseSubmit:   {domain.RoleHR},
	ActionCaseInvite:   {domain.RoleHR},
	ActionCaseRead:     {domain.RoleHR, domain.RoleAdmin},
	ActionCaseApprove:  {domain.RoleAdmin},
	ActionCaseReject:   {domain.RoleAdmin},
	ActionIdentityLock: {domain.RoleAdmin},
	ActionAccessGrant:  {domain.RoleAdmin, domain.RoleHR},
	ActionAccessRevoke: {domain.RoleAdmin, domain.RoleHR},
}

type roleAuthorizer struct {
	policy map[string][]string
}

// NewAuthorizer returns the default role-based capability check.
func NewAuthorizer() ports.Authorizer {
	return &roleAuthorizer{policy: rolePolicy}
}

func (a *roleAuthorizer) Require(actor ports.Actor, action string) error {
	for _, role := range a.policy[action] {
		if actor.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not %s", domain.ErrForbidden, actor.Role, action)
}

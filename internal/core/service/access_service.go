package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// AccessService owns zone access grants. It is the small rule engine the
// shift schedule consults before assigning a provisioned employee to a
// production zone.
type AccessService struct {
	access     ports.AccessRepository
	identities ports.IdentityRepository
	audit      ports.AuditRepository
	authz      ports.Authorizer
	logger     zerolog.Logger
}

func NewAccessService(
	access ports.AccessRepository,
	identities ports.IdentityRepository,
	audit ports.AuditRepository,
	authz ports.Authorizer,
	logger zerolog.Logger,
) *AccessService {
	return &AccessService{access: access, identities: identities, audit: audit, authz: authz, logger: logger}
}

// Grant creates or replaces the (employee, zone) access record.
func (s *AccessService) Grant(ctx context.Context, actor ports.Actor, employeeID, zone, level string) (*domain.EmployeeZoneAccess, error) {
	if err := s.authz.Require(actor, ActionAccessGrant); err != nil {
		return nil, err
	}
	if zone == "" {
		return nil, fmt.Errorf("%w: zone is required", domain.ErrValidation)
	}
	switch level {
	case domain.LevelBasic, domain.LevelMiddle, domain.LevelHigh:
	default:
		return nil, fmt.Errorf("%w: unknown qualification level %q", domain.ErrValidation, level)
	}

	identity, err := s.identities.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	grant := &domain.EmployeeZoneAccess{
		ID:          uuid.NewString(),
		EmployeeID:  identity.ID,
		Zone:        zone,
		Level:       level,
		Active:      true,
		GrantedByID: actor.ID,
		GrantedAt:   time.Now().UTC(),
	}
	if err := s.access.Upsert(ctx, grant); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, grant.ID,
		fmt.Sprintf("zone access granted: %s -> %s (%s)", identity.Login, zone, level))
	return grant, nil
}

// Revoke deactivates the grant; revoking a missing grant is a no-op.
func (s *AccessService) Revoke(ctx context.Context, actor ports.Actor, employeeID, zone string) error {
	if err := s.authz.Require(actor, ActionAccessRevoke); err != nil {
		return err
	}
	if err := s.access.Revoke(ctx, employeeID, zone); err != nil {
		return err
	}
	s.record(ctx, actor.ID, employeeID, fmt.Sprintf("zone access revoked: %s", zone))
	return nil
}

// CanAssign is the gating rule: an employee may be made responsible for a
// shift only in zones with an active grant.
func (s *AccessService) CanAssign(ctx context.Context, employeeID, zone string) (bool, error) {
	grants, err := s.access.FindActive(ctx, employeeID)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if g.Zone == zone {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccessService) ListFor(ctx context.Context, employeeID string) ([]*domain.EmployeeZoneAccess, error) {
	return s.access.FindActive(ctx, employeeID)
}

func (s *AccessService) record(ctx context.Context, actorID, objectID, details string) {
	entry := &domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     domain.ActionUpdate,
		ObjectType: "zone_access",
		ObjectID:   objectID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("object_id", objectID).Msg("failed to append audit entry")
	}
}

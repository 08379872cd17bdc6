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

// IdentityService implements the administrator lock/unlock controls on
// provisioned accounts. A locked identity keeps its verifier but cannot
// sign in until unlocked.
type IdentityService struct {
	identities ports.IdentityRepository
	audit      ports.AuditRepository
	authz      ports.Authorizer
	logger     zerolog.Logger
}

func NewIdentityService(identities ports.IdentityRepository, audit ports.AuditRepository, authz ports.Authorizer, logger zerolog.Logger) *IdentityService {
	return &IdentityService{identities: identities, audit: audit, authz: authz, logger: logger}
}

func (s *IdentityService) Lock(ctx context.Context, actor ports.Actor, identityID string) error {
	return s.setActive(ctx, actor, identityID, false)
}

func (s *IdentityService) Unlock(ctx context.Context, actor ports.Actor, identityID string) error {
	return s.setActive(ctx, actor, identityID, true)
}

func (s *IdentityService) setActive(ctx context.Context, actor ports.Actor, identityID string, active bool) error {
	if err := s.authz.Require(actor, ActionIdentityLock); err != nil {
		return err
	}

	identity, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		return err
	}
	if err := s.identities.SetActive(ctx, identity.ID, active); err != nil {
		return err
	}

	action := domain.ActionLock
	verb := "locked"
	if active {
		action = domain.ActionUnlock
		verb = "unlocked"
	}

	entry := &domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actor.ID,
		Action:     action,
		ObjectType: "employee_identity",
		ObjectID:   identity.ID,
		Details:    fmt.Sprintf("account %s %s", identity.Login, verb),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("identity_id", identity.ID).Msg("failed to append audit entry")
	}

	s.logger.Info().Str("login", identity.Login).Bool("active", active).Msg("identity state changed")
	return nil
}

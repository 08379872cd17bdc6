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

// ApprovalService implements the administrator decisions on pending
// cases. Approve is the orchestrator of the provisioning pipeline: it
// holds the case lock across guard, issuance, transition and delivery so
// it can never interleave with an inbound link event on the same case.
type ApprovalService struct {
	cases       ports.CaseRepository
	credentials ports.CredentialService
	audit       ports.AuditRepository
	messenger   Messenger
	authz       ports.Authorizer
	locks       *KeyedLock
	logger      zerolog.Logger
}

func NewApprovalService(
	cases ports.CaseRepository,
	credentials ports.CredentialService,
	audit ports.AuditRepository,
	messenger Messenger,
	authz ports.Authorizer,
	locks *KeyedLock,
	logger zerolog.Logger,
) *ApprovalService {
	return &ApprovalService{
		cases:       cases,
		credentials: credentials,
		audit:       audit,
		messenger:   messenger,
		authz:       authz,
		locks:       locks,
		logger:      logger,
	}
}

// Approve confirms the hire: provisions the identity, atomically moves
// the case to hired with approver and identity references, and delivers
// the credentials to the linked channel when one exists. Identity
// issuance failures abort before any case mutation, so the case stays
// pending_approval and the request is safely retryable.
func (s *ApprovalService) Approve(ctx context.Context, actor ports.Actor, caseID string) (*ports.ApproveResult, error) {
	if err := s.authz.Require(actor, ActionCaseApprove); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(caseID)
	defer unlock()

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.StatusPendingApproval {
		return nil, fmt.Errorf("%w: only pending_approval cases can be approved, got %s", domain.ErrInvalidTransition, c.Status)
	}

	cred, err := s.credentials.IssueFor(ctx, c.ID, c.CandidateName, c.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.cases.MarkHired(ctx, c.ID, domain.StatusPendingApproval, actor.ID, cred.IdentityID); err != nil {
		s.logger.Error().Err(err).Str("case_id", c.ID).Str("login", cred.Login).Msg("hire transition failed after identity creation")
		return nil, err
	}
	c.Status = domain.StatusHired
	c.ApprovedByID = actor.ID
	c.EmployeeID = cred.IdentityID

	s.record(ctx, actor.ID, domain.ActionCreate, "employee_identity", cred.IdentityID,
		fmt.Sprintf("candidate %s approved; account %s created (secret redacted)", c.CandidateName, cred.Login))

	result := &ports.ApproveResult{Case: c, Login: cred.Login}

	// Chat already linked: the approval is the last writer and owns the
	// delivery. A failed send does not roll anything back; the secret
	// stays with the administrator for manual relay.
	if c.ChatID != "" {
		result.Delivered = s.messenger.Send(ctx, c.ChatID,
			fmt.Sprintf(msgCredentials, cred.Login, cred.PlainSecret))
		s.record(ctx, actor.ID, domain.ActionDeliver, "employee_identity", cred.IdentityID,
			deliveryDetail(cred.Login, result.Delivered))
		if !result.Delivered {
			s.logger.Warn().Str("case_id", c.ID).Str("chat_id", c.ChatID).Msg("credential delivery failed on approval")
			result.PlainSecret = cred.PlainSecret
		}
		return result, nil
	}

	// No chat linked yet: surface the secret once and let the future
	// link event deliver a rotated one.
	result.PlainSecret = cred.PlainSecret
	result.DeliveryDeferred = true
	s.record(ctx, actor.ID, domain.ActionDeliver, "employee_identity", cred.IdentityID,
		fmt.Sprintf("delivery for %s deferred pending channel link", cred.Login))

	return result, nil
}

// Reject closes a pending case without provisioning anything.
func (s *ApprovalService) Reject(ctx context.Context, actor ports.Actor, caseID string) (*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseReject); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(caseID)
	defer unlock()

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.StatusPendingApproval {
		return nil, fmt.Errorf("%w: only pending_approval cases can be rejected, got %s", domain.ErrInvalidTransition, c.Status)
	}

	if err := s.cases.SetStatus(ctx, c.ID, domain.StatusPendingApproval, domain.StatusRejected); err != nil {
		return nil, err
	}
	c.Status = domain.StatusRejected

	s.record(ctx, actor.ID, domain.ActionUpdate, "hiring_case", c.ID,
		fmt.Sprintf("candidate %s rejected", c.CandidateName))
	s.logger.Info().Str("case_id", c.ID).Msg("case rejected")

	return c, nil
}

// ListPending returns the administrator approval queue.
func (s *ApprovalService) ListPending(ctx context.Context, actor ports.Actor) ([]*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseRead); err != nil {
		return nil, err
	}
	return s.cases.List(ctx, ports.ListCasesFilter{Status: string(domain.StatusPendingApproval)})
}

func (s *ApprovalService) record(ctx context.Context, actorID, action, objectType, objectID, details string) {
	entry := &domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		ObjectType: objectType,
		ObjectID:   objectID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("object_id", objectID).Msg("failed to append audit entry")
	}
}

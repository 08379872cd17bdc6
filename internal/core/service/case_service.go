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

// CaseService implements the HR-facing hiring case use cases.
type CaseService struct {
	cases  ports.CaseRepository
	audit  ports.AuditRepository
	authz  ports.Authorizer
	locks  *KeyedLock
	logger zerolog.Logger
}

func NewCaseService(
	cases ports.CaseRepository,
	audit ports.AuditRepository,
	authz ports.Authorizer,
	locks *KeyedLock,
	logger zerolog.Logger,
) *CaseService {
	return &CaseService{cases: cases, audit: audit, authz: authz, locks: locks, logger: logger}
}

// Create opens a hiring case in scheduled status.
func (s *CaseService) Create(ctx context.Context, actor ports.Actor, in ports.CreateCaseInput) (*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseCreate); err != nil {
		return nil, err
	}
	if err := validateCaseFields(in.CandidateName, in.Phone, in.Workshop, in.InterviewAt); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.HiringCase{
		ID:            uuid.NewString(),
		CandidateName: in.CandidateName,
		Phone:         in.Phone,
		Workshop:      in.Workshop,
		InterviewAt:   in.InterviewAt,
		Notes:         in.Notes,
		Status:        domain.StatusScheduled,
		HRManagerID:   actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.cases.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create hiring case")
		return nil, err
	}

	s.record(ctx, actor.ID, domain.ActionCreate, c.ID,
		fmt.Sprintf("interview scheduled: %s, %s", c.CandidateName, c.Phone))
	s.logger.Info().Str("case_id", c.ID).Str("candidate", c.CandidateName).Msg("hiring case created")

	return c, nil
}

// Edit rewrites the editable fields of a non-terminal case. Status is
// never changed here.
func (s *CaseService) Edit(ctx context.Context, actor ports.Actor, caseID string, in ports.EditCaseInput) (*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseEdit); err != nil {
		return nil, err
	}
	if err := validateCaseFields(in.CandidateName, in.Phone, in.Workshop, in.InterviewAt); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(caseID)
	defer unlock()

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case %s is %s", domain.ErrInvalidTransition, caseID, c.Status)
	}

	c.CandidateName = in.CandidateName
	c.Phone = in.Phone
	c.Workshop = in.Workshop
	c.InterviewAt = in.InterviewAt
	c.Notes = in.Notes
	c.UpdatedAt = time.Now().UTC()

	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, domain.ActionUpdate, c.ID,
		fmt.Sprintf("case updated: %s", c.CandidateName))
	return c, nil
}

// Complete marks the interview as held.
func (s *CaseService) Complete(ctx context.Context, actor ports.Actor, caseID string) (*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseEdit); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, caseID, domain.StatusCompleted, "interview completed")
}

// SubmitForApproval hands the case to the administrator queue. Allowed
// from any pre-terminal status.
func (s *CaseService) SubmitForApproval(ctx context.Context, actor ports.Actor, caseID string) (*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseSubmit); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, caseID, domain.StatusPendingApproval, "candidate sent for administrator approval")
}

func (s *CaseService) Get(ctx context.Context, actor ports.Actor, caseID string) (*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseRead); err != nil {
		return nil, err
	}
	return s.cases.FindByID(ctx, caseID)
}

func (s *CaseService) List(ctx context.Context, actor ports.Actor, filter ports.ListCasesFilter) ([]*domain.HiringCase, error) {
	if err := s.authz.Require(actor, ActionCaseRead); err != nil {
		return nil, err
	}
	return s.cases.List(ctx, filter)
}

// transition applies one guarded status change under the case lock.
func (s *CaseService) transition(ctx context.Context, actor ports.Actor, caseID string, to domain.CaseStatus, detail string) (*domain.HiringCase, error) {
	unlock := s.locks.Lock(caseID)
	defer unlock()

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !c.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, c.Status, to)
	}

	if err := s.cases.SetStatus(ctx, caseID, c.Status, to); err != nil {
		return nil, err
	}
	c.Status = to

	s.record(ctx, actor.ID, domain.ActionUpdate, c.ID,
		fmt.Sprintf("%s: %s", detail, c.CandidateName))
	s.logger.Info().Str("case_id", c.ID).Str("status", string(to)).Msg("case status changed")

	return c, nil
}

// record appends an audit entry; audit failures are logged, never fatal.
func (s *CaseService) record(ctx context.Context, actorID, action, caseID, details string) {
	entry := &domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		ObjectType: "hiring_case",
		ObjectID:   caseID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("case_id", caseID).Msg("failed to append audit entry")
	}
}

// validateCaseFields enforces the required fields of create and edit.
func validateCaseFields(name, phone, workshop string, interviewAt time.Time) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: candidate name is required", domain.ErrValidation)
	case phone == "":
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	case workshop == "":
		return fmt.Errorf("%w: workshop is required", domain.ErrValidation)
	case interviewAt.IsZero():
		return fmt.Errorf("%w: interview time is required", domain.ErrValidation)
	}
	return nil
}

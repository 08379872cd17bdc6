package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

func newCaseService(cases *stubCaseRepo, audit *stubAuditRepo) *CaseService {
	return NewCaseService(cases, audit, NewAuthorizer(), NewKeyedLock(), zerolog.Nop())
}

func validCreateInput() ports.CreateCaseInput {
	return ports.CreateCaseInput{
		CandidateName: "A. Ivanov",
		Phone:         "+7 900 111 22 33",
		Workshop:      "Hot Shop",
		InterviewAt:   time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
		Notes:         "referred by the shift lead",
	}
}

func TestCreate_OpensScheduledCase(t *testing.T) {
	cases := newStubCaseRepo()
	audit := newStubAuditRepo()
	svc := newCaseService(cases, audit)

	c, err := svc.Create(context.Background(), hrActor, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if c.Status != domain.StatusScheduled {
		t.Errorf("status = %s, want scheduled", c.Status)
	}
	if c.HRManagerID != hrActor.ID {
		t.Errorf("hr manager = %q, want %q", c.HRManagerID, hrActor.ID)
	}
	if c.ID == "" {
		t.Errorf("case id not assigned")
	}

	stored, err := cases.FindByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("case not persisted: %v", err)
	}
	if stored.CandidateName != "A. Ivanov" {
		t.Errorf("candidate = %q", stored.CandidateName)
	}
	if got := audit.byAction(domain.ActionCreate); len(got) != 1 {
		t.Errorf("audit create entries = %d, want 1", len(got))
	}
}

func TestCreate_ValidatesRequiredFields(t *testing.T) {
	svc := newCaseService(newStubCaseRepo(), newStubAuditRepo())

	tests := []struct {
		name   string
		mutate func(*ports.CreateCaseInput)
	}{
		{"missing name", func(in *ports.CreateCaseInput) { in.CandidateName = "" }},
		{"missing phone", func(in *ports.CreateCaseInput) { in.Phone = "" }},
		{"missing workshop", func(in *ports.CreateCaseInput) { in.Workshop = "" }},
		{"missing interview time", func(in *ports.CreateCaseInput) { in.InterviewAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), hrActor, in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreate_DeniedForNonHR(t *testing.T) {
	svc := newCaseService(newStubCaseRepo(), newStubAuditRepo())

	_, err := svc.Create(context.Background(), adminActor, validCreateInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestEdit_RewritesFieldsOfOpenCase(t *testing.T) {
	cases := newStubCaseRepo()
	svc := newCaseService(cases, newStubAuditRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, hrActor, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Edit(ctx, hrActor, c.ID, ports.EditCaseInput{
		CandidateName: "A. Ivanov",
		Phone:         "+7 900 111 22 33",
		Workshop:      "Cold Shop",
		InterviewAt:   c.InterviewAt.Add(24 * time.Hour),
		Notes:         "moved one day later",
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if updated.Workshop != "Cold Shop" {
		t.Errorf("workshop = %q", updated.Workshop)
	}
	if updated.Status != domain.StatusScheduled {
		t.Errorf("edit must not change status, got %s", updated.Status)
	}
}

func TestEdit_RejectsTerminalCase(t *testing.T) {
	cases := newStubCaseRepo()
	svc := newCaseService(cases, newStubAuditRepo())
	ctx := context.Background()

	c, _ := svc.Create(ctx, hrActor, validCreateInput())
	cases.mu.Lock()
	cases.cases[c.ID].Status = domain.StatusRejected
	cases.mu.Unlock()

	_, err := svc.Edit(ctx, hrActor, c.ID, ports.EditCaseInput(validCreateInput()))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestComplete_ThenSubmit(t *testing.T) {
	cases := newStubCaseRepo()
	svc := newCaseService(cases, newStubAuditRepo())
	ctx := context.Background()

	c, _ := svc.Create(ctx, hrActor, validCreateInput())

	c, err := svc.Complete(ctx, hrActor, c.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if c.Status != domain.StatusCompleted {
		t.Errorf("status = %s, want completed", c.Status)
	}

	c, err = svc.SubmitForApproval(ctx, hrActor, c.ID)
	if err != nil {
		t.Fatalf("SubmitForApproval: %v", err)
	}
	if c.Status != domain.StatusPendingApproval {
		t.Errorf("status = %s, want pending_approval", c.Status)
	}
}

func TestSubmitForApproval_StraightFromScheduled(t *testing.T) {
	svc := newCaseService(newStubCaseRepo(), newStubAuditRepo())
	ctx := context.Background()

	c, _ := svc.Create(ctx, hrActor, validCreateInput())
	c, err := svc.SubmitForApproval(ctx, hrActor, c.ID)
	if err != nil {
		t.Fatalf("SubmitForApproval: %v", err)
	}
	if c.Status != domain.StatusPendingApproval {
		t.Errorf("status = %s, want pending_approval", c.Status)
	}
}

func TestComplete_RejectsInvalidTransition(t *testing.T) {
	cases := newStubCaseRepo()
	svc := newCaseService(cases, newStubAuditRepo())
	ctx := context.Background()

	c, _ := svc.Create(ctx, hrActor, validCreateInput())
	if _, err := svc.SubmitForApproval(ctx, hrActor, c.ID); err != nil {
		t.Fatalf("SubmitForApproval: %v", err)
	}

	_, err := svc.Complete(ctx, hrActor, c.ID)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestGet_UnknownCase(t *testing.T) {
	svc := newCaseService(newStubCaseRepo(), newStubAuditRepo())

	_, err := svc.Get(context.Background(), hrActor, "missing")
	if !errors.Is(err, domain.ErrCaseNotFound) {
		t.Fatalf("err = %v, want ErrCaseNotFound", err)
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var (
	hrActor    = ports.Actor{ID: "hr-1", Name: "HR Manager", Role: domain.RoleHR}
	adminActor = ports.Actor{ID: "admin-1", Name: "Administrator", Role: domain.RoleAdmin}
)

type stubCaseRepo struct {
	mu    sync.Mutex
	cases map[string]*domain.HiringCase
}

func newStubCaseRepo() *stubCaseRepo {
	return &stubCaseRepo{cases: make(map[string]*domain.HiringCase)}
}

func (r *stubCaseRepo) Create(_ context.Context, c *domain.HiringCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.cases[c.ID] = &clone
	return nil
}

func (r *stubCaseRepo) FindByID(_ context.Context, id string) (*domain.HiringCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[id]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCaseRepo) Update(_ context.Context, c *domain.HiringCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.cases[c.ID]
	if !ok {
		return domain.ErrCaseNotFound
	}
	stored.CandidateName = c.CandidateName
	stored.Phone = c.Phone
	stored.Workshop = c.Workshop
	stored.InterviewAt = c.InterviewAt
	stored.Notes = c.Notes
	stored.UpdatedAt = c.UpdatedAt
	return nil
}

// SetStatus mirrors the compare-and-swap semantics of the Mongo repo.
func (r *stubCaseRepo) SetStatus(_ context.Context, id string, from, to domain.CaseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[id]
	if !ok {
		return domain.ErrCaseNotFound
	}
	if c.Status != from {
		return fmt.Errorf("%w: status is %s, expected %s", domain.ErrInvalidTransition, c.Status, from)
	}
	c.Status = to
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubCaseRepo) MarkHired(_ context.Context, id string, from domain.CaseStatus, approvedByID, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[id]
	if !ok {
		return domain.ErrCaseNotFound
	}
	if c.Status != from {
		return fmt.Errorf("%w: status is %s, expected %s", domain.ErrInvalidTransition, c.Status, from)
	}
	c.Status = domain.StatusHired
	c.ApprovedByID = approvedByID
	c.EmployeeID = employeeID
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubCaseRepo) SetChatID(_ context.Context, id, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cases[id]
	if !ok {
		return domain.ErrCaseNotFound
	}
	c.ChatID = chatID
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubCaseRepo) List(_ context.Context, f ports.ListCasesFilter) ([]*domain.HiringCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.HiringCase
	for _, c := range r.cases {
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	return matched, nil
}

type stubTokenRepo struct {
	mu     sync.Mutex
	byCase map[string]*domain.LinkToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{byCase: make(map[string]*domain.LinkToken)}
}

// Save replaces any existing record for the case, exactly like the
// Mongo upsert keyed on case id.
func (r *stubTokenRepo) Save(_ context.Context, t *domain.LinkToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	r.byCase[t.CaseID] = &clone
	return nil
}

func (r *stubTokenRepo) FindByToken(_ context.Context, token string) (*domain.LinkToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byCase {
		if t.Token == token {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) FindByCase(_ context.Context, caseID string) (*domain.LinkToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byCase[caseID]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) Link(_ context.Context, caseID, chatID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byCase[caseID]
	if !ok {
		return domain.ErrTokenNotFound
	}
	t.ChatID = chatID
	t.LinkedAt = &at
	t.UpdatedAt = at
	return nil
}

type stubIdentityRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.EmployeeIdentity
	byLogin map[string]*domain.EmployeeIdentity
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{
		byID:    make(map[string]*domain.EmployeeIdentity),
		byLogin: make(map[string]*domain.EmployeeIdentity),
	}
}

func (r *stubIdentityRepo) Create(_ context.Context, id *domain.EmployeeIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byLogin[id.Login]; taken {
		return domain.ErrIdentityConflict
	}
	clone := *id
	r.byID[id.ID] = &clone
	r.byLogin[id.Login] = &clone
	return nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.EmployeeIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *ident
	return &clone, nil
}

func (r *stubIdentityRepo) FindByLogin(_ context.Context, login string) (*domain.EmployeeIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.byLogin[login]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	clone := *ident
	return &clone, nil
}

func (r *stubIdentityRepo) LoginExists(_ context.Context, login string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, taken := r.byLogin[login]
	return taken, nil
}

func (r *stubIdentityRepo) UpdateSecret(_ context.Context, id, secretHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.byID[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	ident.SecretHash = secretHash
	ident.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubIdentityRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ident, ok := r.byID[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	ident.Active = active
	ident.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubIdentityRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type stubAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditEntry
}

func newStubAuditRepo() *stubAuditRepo {
	return &stubAuditRepo{}
}

func (r *stubAuditRepo) Append(_ context.Context, e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int) ([]*domain.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AuditEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		clone := *r.entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAuditRepo) byAction(action string) []*domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AuditEntry
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type stubAccessRepo struct {
	mu     sync.Mutex
	grants map[string]*domain.EmployeeZoneAccess
}

func newStubAccessRepo() *stubAccessRepo {
	return &stubAccessRepo{grants: make(map[string]*domain.EmployeeZoneAccess)}
}

func accessKey(employeeID, zone string) string {
	return employeeID + "/" + zone
}

func (r *stubAccessRepo) Upsert(_ context.Context, a *domain.EmployeeZoneAccess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	r.grants[accessKey(a.EmployeeID, a.Zone)] = &clone
	return nil
}

func (r *stubAccessRepo) FindActive(_ context.Context, employeeID string) ([]*domain.EmployeeZoneAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.EmployeeZoneAccess
	for _, a := range r.grants {
		if a.EmployeeID == employeeID && a.Active {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAccessRepo) Revoke(_ context.Context, employeeID, zone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.grants[accessKey(employeeID, zone)]; ok {
		a.Active = false
	}
	return nil
}

// ---------------------------------------------------------------------------
// Channel stubs
// ---------------------------------------------------------------------------

type sentMessage struct {
	ChatID string
	Text   string
}

type stubMessenger struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

func (m *stubMessenger) Send(_ context.Context, chatID, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false
	}
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Text: text})
	return true
}

func (m *stubMessenger) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

type stubLinkBuilder struct {
	err error
}

func (b *stubLinkBuilder) StartLink(token string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return "https://t.me/testbot?start=" + token, nil
}

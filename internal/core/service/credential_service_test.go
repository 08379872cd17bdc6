package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
)

func TestLoginBase(t *testing.T) {
	tests := []struct {
		name  string
		full  string
		phone string
		want  string
	}{
		{"short latin name", "Ann Lee", "+7 900 111 22 33", "annlee2233"},
		{"truncated to eight", "Christopher Longname", "+1 (555) 000-9876", "christop9876"},
		{"digits kept", "agent 47", "12345", "agent472345"},
		{"non-latin name falls back", "Иван Петров", "+7 900 111 22 33", "emp2233"},
		{"short phone", "Bo", "77", "bo77"},
		{"no digits at all", "Bo", "", "bo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loginBase(tt.full, tt.phone); got != tt.want {
				t.Errorf("loginBase(%q, %q) = %q, want %q", tt.full, tt.phone, got, tt.want)
			}
		})
	}
}

func TestIssueFor_ProvisionsActiveEmployeeIdentity(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	cred, err := svc.IssueFor(context.Background(), "case-1", "A. Ivanov", "+7 900 111 22 33")
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	if cred.Login == "" || cred.PlainSecret == "" || cred.IdentityID == "" {
		t.Fatalf("incomplete credential: %+v", cred)
	}

	stored, err := repo.FindByID(context.Background(), cred.IdentityID)
	if err != nil {
		t.Fatalf("identity not stored: %v", err)
	}
	if stored.Role != domain.RoleEmployee {
		t.Errorf("role = %q, want %q", stored.Role, domain.RoleEmployee)
	}
	if !stored.Active {
		t.Errorf("identity should be active on creation")
	}
	if stored.FullName != "A. Ivanov" {
		t.Errorf("full name = %q", stored.FullName)
	}
}

func TestIssueFor_StoresOnlyVerifier(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewCredentialService(repo, zerolog.Nop())

	cred, err := svc.IssueFor(context.Background(), "case-1", "Ann Lee", "+7 900 111 22 33")
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), cred.IdentityID)
	if stored.SecretHash == cred.PlainSecret {
		t.Fatalf("plaintext secret persisted")
	}
	if strings.Contains(stored.SecretHash, cred.PlainSecret) {
		t.Fatalf("plaintext secret embedded in stored hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.SecretHash), []byte(cred.PlainSecret)); err != nil {
		t.Fatalf("stored hash does not verify the plaintext: %v", err)
	}
}

func TestIssueFor_CollidingLoginsGetSuffixes(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.IssueFor(ctx, "case-1", "Ann Lee", "+7 900 111 22 33")
	if err != nil {
		t.Fatalf("first IssueFor: %v", err)
	}
	second, err := svc.IssueFor(ctx, "case-2", "Ann Lee", "+7 905 444 22 33")
	if err != nil {
		t.Fatalf("second IssueFor: %v", err)
	}
	third, err := svc.IssueFor(ctx, "case-3", "Ann Lee", "+7 905 555 22 33")
	if err != nil {
		t.Fatalf("third IssueFor: %v", err)
	}

	if first.Login != "annlee2233" {
		t.Errorf("first login = %q, want annlee2233", first.Login)
	}
	if second.Login != "annlee22331" {
		t.Errorf("second login = %q, want annlee22331", second.Login)
	}
	if third.Login != "annlee22332" {
		t.Errorf("third login = %q, want annlee22332", third.Login)
	}
}

func TestIssueFor_SecretsAreUnique(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	a, err := svc.IssueFor(ctx, "case-1", "Ann Lee", "+7 900 111 22 33")
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	b, err := svc.IssueFor(ctx, "case-2", "Bob Ray", "+7 900 111 44 55")
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}

	if a.PlainSecret == b.PlainSecret {
		t.Fatalf("two issuances produced the same secret")
	}
	// 16 random bytes base64url-encoded without padding.
	if len(a.PlainSecret) != 22 {
		t.Errorf("secret length = %d, want 22", len(a.PlainSecret))
	}
}

func TestRotate_ReplacesSecretInPlace(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewCredentialService(repo, zerolog.Nop())
	ctx := context.Background()

	cred, err := svc.IssueFor(ctx, "case-1", "Ann Lee", "+7 900 111 22 33")
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}
	before, _ := repo.FindByID(ctx, cred.IdentityID)

	rotated, err := svc.Rotate(ctx, cred.IdentityID)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	if rotated.IdentityID != cred.IdentityID {
		t.Fatalf("rotation created a different identity")
	}
	if rotated.Login != cred.Login {
		t.Errorf("rotation changed the login: %q -> %q", cred.Login, rotated.Login)
	}
	if rotated.PlainSecret == cred.PlainSecret {
		t.Errorf("rotation reused the old secret")
	}

	after, _ := repo.FindByID(ctx, cred.IdentityID)
	if after.SecretHash == before.SecretHash {
		t.Errorf("stored verifier unchanged after rotation")
	}
	if repo.count() != 1 {
		t.Errorf("identity count = %d after rotation, want 1", repo.count())
	}
}

func TestRotate_UnknownIdentity(t *testing.T) {
	svc := NewCredentialService(newStubIdentityRepo(), zerolog.Nop())

	_, err := svc.Rotate(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error for unknown identity")
	}
}

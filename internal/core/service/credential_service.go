package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// secretBytes gives 128 bits of entropy per credential secret.
const secretBytes = 16

// maxLoginAttempts caps the collision-avoiding suffix loop.
const maxLoginAttempts = 1000

// CredentialService creates employee identities and their one-time
// credentials. The plaintext secret is returned to the caller exactly
// once; only the bcrypt verifier is persisted.
type CredentialService struct {
	identities ports.IdentityRepository
	logger     zerolog.Logger
}

func NewCredentialService(identities ports.IdentityRepository, logger zerolog.Logger) *CredentialService {
	return &CredentialService{identities: identities, logger: logger}
}

// IssueFor provisions the account for an approved candidate: derives a
// unique login from name and phone, generates a fresh secret, and stores
// the identity with active=true. Any failure leaves no case mutation
// behind the caller's transition, so the approval stays retryable.
func (s *CredentialService) IssueFor(ctx context.Context, caseID, candidateName, phone string) (*ports.IssuedCredential, error) {
	login, err := s.uniqueLogin(ctx, candidateName, phone)
	if err != nil {
		return nil, err
	}

	secret, hash, err := newSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity := &domain.EmployeeIdentity{
		ID:         uuid.NewString(),
		Login:      login,
		FullName:   candidateName,
		SecretHash: hash,
		Role:       domain.RoleEmployee,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	s.logger.Info().Str("case_id", caseID).Str("login", login).Msg("employee identity provisioned")

	return &ports.IssuedCredential{
		IdentityID:  identity.ID,
		Login:       login,
		PlainSecret: secret,
	}, nil
}

// Rotate replaces the secret of an existing identity in place and returns
// the new plaintext. Used when a channel links after the hire, so the
// candidate always receives a secret that has never been shown before.
func (s *CredentialService) Rotate(ctx context.Context, identityID string) (*ports.IssuedCredential, error) {
	identity, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("rotate credential: %w", err)
	}

	secret, hash, err := newSecret()
	if err != nil {
		return nil, err
	}

	if err := s.identities.UpdateSecret(ctx, identity.ID, hash); err != nil {
		return nil, fmt.Errorf("rotate credential: %w", err)
	}

	s.logger.Info().Str("login", identity.Login).Msg("credential rotated")

	return &ports.IssuedCredential{
		IdentityID:  identity.ID,
		Login:       identity.Login,
		PlainSecret: secret,
	}, nil
}

// uniqueLogin builds a deterministic slug from the candidate name plus the
// last four phone digits, then appends a numeric suffix until the login is
// free. The loop is capped so a pathological store cannot spin forever.
func (s *CredentialService) uniqueLogin(ctx context.Context, name, phone string) (string, error) {
	base := loginBase(name, phone)

	login := base
	for i := 1; i <= maxLoginAttempts; i++ {
		taken, err := s.identities.LoginExists(ctx, login)
		if err != nil {
			return "", fmt.Errorf("login lookup: %w", err)
		}
		if !taken {
			return login, nil
		}
		login = fmt.Sprintf("%s%d", base, i)
	}
	return "", fmt.Errorf("%w: login namespace exhausted for %q", domain.ErrIdentityConflict, base)
}

// loginBase keeps up to eight lowercase latin letters and digits of the
// name and the last four phone digits. Names without latin characters
// fall back to "emp".
func loginBase(name, phone string) string {
	var slug strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			slug.WriteRune(r)
			if slug.Len() == 8 {
				break
			}
		}
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	tail := digits.String()
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}

	base := slug.String()
	if base == "" {
		base = "emp"
	}
	return base + tail
}

// newSecret returns a fresh plaintext secret and its bcrypt verifier.
func newSecret() (plain, hash string, err error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate secret: %w", err)
	}
	plain = base64.RawURLEncoding.EncodeToString(buf)

	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash secret: %w", err)
	}
	return plain, string(h), nil
}

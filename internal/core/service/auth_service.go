package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// AuthService verifies a supplied secret against the stored bcrypt
// verifier of a provisioned identity and mints the portal session token.
type AuthService struct {
	identities ports.IdentityRepository
	audit      ports.AuditRepository
	jwtSecret  string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewAuthService(identities ports.IdentityRepository, audit ports.AuditRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{identities: identities, audit: audit, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login authenticates by login handle and secret. A missing login and a
// wrong secret are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login, secret string) (string, *domain.EmployeeIdentity, error) {
	if login == "" || secret == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.SecretHash), []byte(secret)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !identity.Active {
		return "", nil, domain.ErrIdentityLocked
	}

	token, err := s.generateToken(identity)
	if err != nil {
		return "", nil, err
	}

	s.record(ctx, identity.ID, fmt.Sprintf("signed in: %s", identity.Login))

	return token, identity, nil
}

func (s *AuthService) generateToken(identity *domain.EmployeeIdentity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"login": identity.Login,
		"name":  identity.FullName,
		"role":  identity.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) record(ctx context.Context, identityID, details string) {
	entry := &domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    identityID,
		Action:     domain.ActionLogin,
		ObjectType: "employee_identity",
		ObjectID:   identityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("identity_id", identityID).Msg("failed to append audit entry")
	}
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artkulinaria/staffing-backoffice/internal/core/domain"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// tokenBytes gives 192 bits of entropy per link token, well past the
// point where a collision or guess is a practical concern.
const tokenBytes = 24

// Messenger abstracts the outbound channel send. Send reports acceptance
// by the provider; it must not fail loudly, a false return is the only
// error signal on this path.
type Messenger interface {
	Send(ctx context.Context, chatID, text string) bool
}

// InviteLinkBuilder renders the provider deep link that carries a token.
type InviteLinkBuilder interface {
	StartLink(token string) (string, error)
}

// Candidate-facing message texts. Deliberately generic: a candidate never
// sees internal error detail, and an unknown token reads the same whether
// it expired, was reissued, or never existed.
const (
	msgInvalidInvite = "The invitation code is not valid."
	msgMissingCode   = "The invitation link is missing its code."
	msgLinkedAck     = "Contact for candidate %s linked successfully. You will receive your credentials once the administrator confirms the hire."
	msgCredentials   = "Your chat has been linked and your hire is confirmed.\nLogin: %s\nTemporary password: %s\nPlease change the password after the first sign-in."
)

// LinkService owns link tokens and inbound /start events.
type LinkService struct {
	tokens      ports.TokenRepository
	cases       ports.CaseRepository
	credentials ports.CredentialService
	audit       ports.AuditRepository
	messenger   Messenger
	links       InviteLinkBuilder
	authz       ports.Authorizer
	locks       *KeyedLock
	logger      zerolog.Logger
}

func NewLinkService(
	tokens ports.TokenRepository,
	cases ports.CaseRepository,
	credentials ports.CredentialService,
	audit ports.AuditRepository,
	messenger Messenger,
	links InviteLinkBuilder,
	authz ports.Authorizer,
	locks *KeyedLock,
	logger zerolog.Logger,
) *LinkService {
	return &LinkService{
		tokens:      tokens,
		cases:       cases,
		credentials: credentials,
		audit:       audit,
		messenger:   messenger,
		links:       links,
		authz:       authz,
		locks:       locks,
		logger:      logger,
	}
}

// IssueInvite generates the link token for a case. A previous token is
// superseded: its value stops resolving and any linkage on both the token
// and the case is cleared, forcing the candidate to re-link.
func (s *LinkService) IssueInvite(ctx context.Context, actor ports.Actor, caseID string) (*ports.InviteResult, error) {
	if err := s.authz.Require(actor, ActionCaseInvite); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(caseID)
	defer unlock()

	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	// Fail on a missing bot identity before any state changes, so HR
	// never ends up with a consumed token and no link to hand out.
	link, err := s.links.StartLink(token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.LinkToken{
		CaseID:    c.ID,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev, err := s.tokens.FindByCase(ctx, c.ID); err == nil {
		record.CreatedAt = prev.CreatedAt
	}

	if err := s.tokens.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("issue invite: %w", err)
	}
	if err := s.cases.SetChatID(ctx, c.ID, ""); err != nil {
		return nil, fmt.Errorf("issue invite: %w", err)
	}

	s.record(ctx, actor.ID, domain.ActionIssue, "link_token", c.ID,
		fmt.Sprintf("invite link issued for %s", c.CandidateName))

	return &ports.InviteResult{Token: token, Link: link}, nil
}

// HandleUpdate consumes one inbound channel event. All outcomes return
// nil: the provider only needs to know the event was consumed, and
// candidate-facing replies carry no internal detail.
func (s *LinkService) HandleUpdate(ctx context.Context, upd ports.ChannelUpdate) error {
	token, ok := parseStartCommand(upd.Text)
	if !ok {
		return nil
	}
	if upd.ChatID == "" {
		return nil
	}
	if token == "" {
		s.reply(ctx, upd.ChatID, msgMissingCode)
		return nil
	}

	record, err := s.tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			// Same reply for a reissued, mistyped, or fabricated token.
			s.reply(ctx, upd.ChatID, msgInvalidInvite)
			return nil
		}
		return fmt.Errorf("token lookup: %w", err)
	}

	unlock := s.locks.Lock(record.CaseID)
	defer unlock()

	// The lookup above ran outside the case lock, so a concurrent
	// re-issue may have superseded the token in the meantime. Re-read
	// the case's current token under the lock and make sure the
	// submitted value is still the live one; a stale deep link must not
	// bind a channel.
	record, err = s.tokens.FindByCase(ctx, record.CaseID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			s.reply(ctx, upd.ChatID, msgInvalidInvite)
			return nil
		}
		return fmt.Errorf("token lookup: %w", err)
	}
	if record.Token != token {
		s.reply(ctx, upd.ChatID, msgInvalidInvite)
		return nil
	}

	c, err := s.cases.FindByID(ctx, record.CaseID)
	if err != nil {
		return fmt.Errorf("case lookup: %w", err)
	}

	// Relinking with the same chat is a no-op write; a different chat
	// (new device, new account) replaces the previous linkage.
	if record.ChatID != upd.ChatID || !record.Linked() {
		now := time.Now().UTC()
		if err := s.tokens.Link(ctx, record.CaseID, upd.ChatID, now); err != nil {
			return fmt.Errorf("record link: %w", err)
		}
		if err := s.cases.SetChatID(ctx, c.ID, upd.ChatID); err != nil {
			return fmt.Errorf("record link: %w", err)
		}
		c.ChatID = upd.ChatID
		s.record(ctx, "", domain.ActionLink, "hiring_case", c.ID,
			fmt.Sprintf("channel %s linked to candidate %s", upd.ChatID, c.CandidateName))
	}

	// Hire confirmed before the chat linked: the link event is the last
	// writer and owns credential delivery. Rotation, not re-issuance:
	// the identity already exists, only the secret is replaced.
	if c.Status == domain.StatusHired && c.EmployeeID != "" {
		cred, err := s.credentials.Rotate(ctx, c.EmployeeID)
		if err != nil {
			return fmt.Errorf("rotate on link: %w", err)
		}
		delivered := s.messenger.Send(ctx, upd.ChatID, fmt.Sprintf(msgCredentials, cred.Login, cred.PlainSecret))
		s.record(ctx, "", domain.ActionDeliver, "employee_identity", cred.IdentityID,
			deliveryDetail(cred.Login, delivered))
		if !delivered {
			s.logger.Warn().Str("case_id", c.ID).Str("chat_id", upd.ChatID).Msg("credential delivery failed after link")
		}
		return nil
	}

	s.reply(ctx, upd.ChatID, fmt.Sprintf(msgLinkedAck, c.CandidateName))
	return nil
}

// reply is a best-effort send; failures are logged and swallowed.
func (s *LinkService) reply(ctx context.Context, chatID, text string) {
	if !s.messenger.Send(ctx, chatID, text) {
		s.logger.Warn().Str("chat_id", chatID).Msg("channel reply not delivered")
	}
}

func (s *LinkService) record(ctx context.Context, actorID, action, objectType, objectID, details string) {
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

// parseStartCommand extracts the token argument from a /start command.
// Any other message shape is reported as not matching.
func parseStartCommand(text string) (token string, ok bool) {
	if !strings.HasPrefix(text, "/start") {
		return "", false
	}
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// newToken returns a URL-path-safe random token.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func deliveryDetail(login string, delivered bool) string {
	if delivered {
		return fmt.Sprintf("credentials for %s delivered to linked channel (secret redacted)", login)
	}
	return fmt.Sprintf("credential delivery for %s failed; manual relay required (secret redacted)", login)
}

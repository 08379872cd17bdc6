package ports

import "context"

// InviteResult is returned when HR requests a channel invite for a case.
type InviteResult struct {
	Token string
	Link  string
}

// ChannelUpdate is one inbound event from the messaging provider,
// reduced to the fields the pipeline consumes.
type ChannelUpdate struct {
	UpdateID int64
	ChatID   string
	Text     string
}

// LinkService owns the out-of-band channel linking protocol: token
// issuance and inbound /start event handling.
type LinkService interface {
	// IssueInvite generates (or regenerates, discarding the old value)
	// the link token for a case and returns the provider deep link.
	IssueInvite(ctx context.Context, actor Actor, caseID string) (*InviteResult, error)
	// HandleUpdate consumes one inbound channel event. Events that do
	// not match the /start command shape are accepted without effect;
	// processing errors on the webhook path never propagate to the
	// provider as failures.
	HandleUpdate(ctx context.Context, upd ChannelUpdate) error
}

// CredentialService generates and rotates account credentials. IssueFor
// is invoked exactly once per case, from inside the approval transition.
type CredentialService interface {
	IssueFor(ctx context.Context, caseID, candidateName, phone string) (*IssuedCredential, error)
	Rotate(ctx context.Context, identityID string) (*IssuedCredential, error)
}

// IssuedCredential carries the plaintext secret back to the single caller
// allowed to display or deliver it. Only the bcrypt verifier is stored.
type IssuedCredential struct {
	IdentityID  string
	Login       string
	PlainSecret string
}

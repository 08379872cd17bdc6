package domain

import "time"

// LinkToken is the single-use secret binding a hiring case to a messaging
// channel. One record per case; re-issuing replaces the token value and
// clears any previous linkage, so an old value can no longer resolve.
type LinkToken struct {
	CaseID string `bson:"_id"`
	// Token is the opaque high-entropy secret embedded in the deep link.
	// Unique across all tokens.
	Token     string     `bson:"token"`
	ChatID    string     `bson:"chat_id,omitempty"`
	LinkedAt  *time.Time `bson:"linked_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// Linked reports whether a channel identity has been recorded on the token.
func (t *LinkToken) Linked() bool {
	return t.ChatID != "" && t.LinkedAt != nil
}

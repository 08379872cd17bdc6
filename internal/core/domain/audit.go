package domain

import "time"

// Audit action kinds.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionLink    = "link"
	ActionIssue   = "issue"
	ActionDeliver = "deliver"
	ActionLock    = "lock"
	ActionUnlock  = "unlock"
	ActionLogin   = "login"
)

// AuditEntry is an immutable record of a mutating operation. ActorID is
// empty for system-triggered events such as inbound webhook processing.
// Entries are only ever appended.
type AuditEntry struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Action     string    `json:"action" bson:"action"`
	ObjectType string    `json:"object_type" bson:"object_type"`
	ObjectID   string    `json:"object_id" bson:"object_id"`
	Details    string    `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

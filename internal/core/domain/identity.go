package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

var ErrIdentityNotFound = errors.New("identity not found")
var ErrIdentityConflict = errors.New("identity already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrIdentityLocked = errors.New("identity is locked")

// EmployeeIdentity is a provisioned account. Exactly one is created per
// hiring case on the transition into hired; later credential rotations
// replace SecretHash in place and never create a new identity.
type EmployeeIdentity struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Login    string `json:"login" bson:"login"`
	FullName string `json:"full_name" bson:"full_name"`
	// SecretHash is the bcrypt verifier of the credential secret. The
	// plaintext is never persisted anywhere.
	SecretHash string    `json:"-" bson:"secret_hash"`
	Role       string    `json:"role" bson:"role"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// AccessLevel grades a zone qualification.
const (
	LevelBasic  = "basic"
	LevelMiddle = "middle"
	LevelHigh   = "high"
)

// EmployeeZoneAccess grants an identity the right to be assigned to
// shifts in a production zone. At most one grant per (employee, zone).
type EmployeeZoneAccess struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	EmployeeID  string    `json:"employee_id" bson:"employee_id"`
	Zone        string    `json:"zone" bson:"zone"`
	Level       string    `json:"level" bson:"level"`
	Active      bool      `json:"active" bson:"active"`
	GrantedByID string    `json:"granted_by_id,omitempty" bson:"granted_by_id,omitempty"`
	GrantedAt   time.Time `json:"granted_at" bson:"granted_at"`
}

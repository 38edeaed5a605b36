package domain

import "time"

// Role classifies every platform account. Exactly one role per user; the
// role is authoritative for all policy checks.
type Role string

const (
	RoleDonor    Role = "donor"
	RoleReceiver Role = "receiver"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleReceiver, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for platform accounts. Receivers additionally
// carry the cause they collect for and a legal document number.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CauseID      *int64
	Document     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package types

import "time"

// Role is the authorization level of a user within the system.
type Role string

// Supported roles.
const (
	// RoleJobSeeker may apply to jobs and manage their own applications.
	RoleJobSeeker Role = "job-seeker"

	// RoleEmployer may post jobs and review applications to them.
	RoleEmployer Role = "employer"

	// RoleAdmin has unrestricted access to every resource.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Role indicates the user's authorization level within the system.
	// Roles are fixed at signup; there is no role-change operation.
	Role Role `json:"role" db:"role"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Caller is the resolved identity performing an operation: a user id plus
// the role it carries. Handlers build it from the authenticated user and
// services consult it for every scoped read or mutation.
type Caller struct {
	ID   int
	Role Role
}

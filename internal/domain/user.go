package domain

import "time"

// User represents an account holder of the system. PasswordHash is the
// hex-encoded salt+derived-key blob and is never serialised outward.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named permission group. A user's authorization is the union of
// its assigned role names.
type Role struct {
	ID   int64
	Name string
}

// Built-in role names seeded at schema init.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session is an opaque bearer credential proving a prior successful login.
// It is valid iff ExpiresAt is in the future; validity is purely a store
// lookup, the token carries no signature.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

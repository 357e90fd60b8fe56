package auth

import "time"

// Identity is a registered account. Profile fields are immutable after
// registration; the password hash is never exposed through any API surface.
type Identity struct {
	ID           int64
	Email        string
	PasswordHash string
	Firstname    string
	Lastname     string
	Telephone    string
	Role         Role
	CreatedAt    time.Time
}

package auth

import "context"

// IdentityStore describes the persistence operations required by the
// authentication flow. Implementations report ErrNotFound for missing rows
// and ErrAlreadyExists for duplicate emails.
type IdentityStore interface {
	Create(ctx context.Context, identity *Identity) error
	FindByID(ctx context.Context, id int64) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
}

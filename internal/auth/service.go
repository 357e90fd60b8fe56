package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service implements registration and login on top of an IdentityStore and a
// token service. It holds no mutable state of its own.
type Service struct {
	store  IdentityStore
	tokens *Tokens
}

func NewService(store IdentityStore, tokens *Tokens) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: identity store is required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token service is required")
	}
	return &Service{store: store, tokens: tokens}, nil
}

// RegisterParams carries the registration request fields. All profile fields
// are required.
type RegisterParams struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
	Telephone string
	Role      Role
}

func (p RegisterParams) validate() error {
	if p.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if p.Password == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	if strings.TrimSpace(p.Firstname) == "" {
		return &ValidationError{Field: "firstname", Message: "Firstname is required"}
	}
	if strings.TrimSpace(p.Lastname) == "" {
		return &ValidationError{Field: "lastname", Message: "Lastname is required"}
	}
	if strings.TrimSpace(p.Telephone) == "" {
		return &ValidationError{Field: "telephone", Message: "Telephone is required"}
	}
	if !p.Role.Valid() {
		return &ValidationError{Field: "role", Message: "Role is required"}
	}
	return nil
}

// Register creates a new identity and returns a fresh token for it. A
// duplicate email yields ErrAlreadyExists with nothing persisted; the unique
// index on email is the conflict authority, so concurrent registrations of
// the same address cannot both succeed.
func (s *Service) Register(ctx context.Context, params RegisterParams) (string, time.Time, error) {
	params.Email = strings.TrimSpace(strings.ToLower(params.Email))
	if err := params.validate(); err != nil {
		return "", time.Time{}, err
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return "", time.Time{}, err
	}
	identity := &Identity{
		Email:        params.Email,
		PasswordHash: hash,
		Firstname:    strings.TrimSpace(params.Firstname),
		Lastname:     strings.TrimSpace(params.Lastname),
		Telephone:    strings.TrimSpace(params.Telephone),
		Role:         params.Role,
	}
	if err := s.store.Create(ctx, identity); err != nil {
		return "", time.Time{}, err
	}
	return s.tokens.Issue(identity)
}

// Login verifies credentials and mints a fresh token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", time.Time{}, ErrUnauthorized
	}
	identity, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, ErrUnauthorized
		}
		return "", time.Time{}, err
	}
	if err := VerifyPassword(identity.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrUnauthorized
	}
	return s.tokens.Issue(identity)
}

// Authenticate validates a bearer token and resolves its subject to a live
// identity. A subject that no longer exists is rejected the same way as an
// invalid token.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Identity, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	identity, err := s.store.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return identity, nil
}

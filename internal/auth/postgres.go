package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var _ IdentityStore = (*PGStore)(nil)

// PGStore implements IdentityStore using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const uniqueViolation = "23505"

func (s *PGStore) Create(ctx context.Context, identity *Identity) error {
	err := s.db.QueryRowContext(ctx,
		`insert into identities(email, password_hash, firstname, lastname, telephone, role)
		 values($1,$2,$3,$4,$5,$6)
		 returning id, created_at`,
		identity.Email, identity.PasswordHash, identity.Firstname,
		identity.Lastname, identity.Telephone, string(identity.Role),
	).Scan(&identity.ID, &identity.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, password_hash, firstname, lastname, telephone, role, created_at
		 from identities where id=$1`, id)
	return scanIdentity(row)
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, password_hash, firstname, lastname, telephone, role, created_at
		 from identities where email=$1`, email)
	return scanIdentity(row)
}

func scanIdentity(row *sql.Row) (*Identity, error) {
	var (
		identity Identity
		role     string
	)
	err := row.Scan(&identity.ID, &identity.Email, &identity.PasswordHash,
		&identity.Firstname, &identity.Lastname, &identity.Telephone,
		&role, &identity.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	identity.Role = Role(role)
	return &identity, nil
}

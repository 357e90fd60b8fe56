package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGStoreCreateReturnsAssignedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	created := time.Now().UTC()
	mock.ExpectQuery("insert into identities").
		WithArgs("u@x.com", "hash", "Jane", "Doe", "555-0100", "OWNER").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	store := NewPGStore(db)
	identity := &Identity{
		Email:        "u@x.com",
		PasswordHash: "hash",
		Firstname:    "Jane",
		Lastname:     "Doe",
		Telephone:    "555-0100",
		Role:         RoleOwner,
	}
	if err := store.Create(context.Background(), identity); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if identity.ID != 1 {
		t.Fatalf("unexpected id: %d", identity.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("insert into identities").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "identities_email_key"})

	store := NewPGStore(db)
	err = store.Create(context.Background(), &Identity{Email: "u@x.com", Role: RoleOwner})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPGStoreFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "email", "password_hash", "firstname", "lastname", "telephone", "role", "created_at"}
	mock.ExpectQuery("select id, email, password_hash, firstname, lastname, telephone, role, created_at").
		WithArgs("u@x.com").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(3), "u@x.com", "hash", "Jane", "Doe", "555-0100", "ADMIN", time.Now().UTC()))

	store := NewPGStore(db)
	identity, err := store.FindByEmail(context.Background(), "u@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if identity.ID != 3 || identity.Role != RoleAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestPGStoreFindMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, email, password_hash").WillReturnError(sql.ErrNoRows)

	store := NewPGStore(db)
	if _, err := store.FindByEmail(context.Background(), "nobody@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

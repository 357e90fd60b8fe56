package card

import (
	"context"
	"database/sql"
	"errors"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, c *Card) error {
	return s.db.QueryRowContext(ctx,
		`insert into cards(amount, owner, identity_id) values($1,$2,$3) returning id`,
		c.Amount, c.Owner, c.OwnerID,
	).Scan(&c.ID)
}

func (s *PGStore) FindByID(ctx context.Context, id int64) (*Card, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, amount, owner, identity_id from cards where id=$1`, id)
	return scanCard(row)
}

func (s *PGStore) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*Card, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, amount, owner, identity_id from cards where id=$1 and owner=$2`, id, owner)
	return scanCard(row)
}

func (s *PGStore) ListAll(ctx context.Context, page PageRequest) ([]Card, error) {
	order, err := page.orderBy(true)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`select id, amount, owner, identity_id from cards order by `+order+` limit $1 offset $2`,
		page.Size, page.Page*page.Size)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

func (s *PGStore) ListByOwner(ctx context.Context, owner string, page PageRequest) ([]Card, error) {
	order, err := page.orderBy(false)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`select id, amount, owner, identity_id from cards where owner=$1 order by `+order+` limit $2 offset $3`,
		owner, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

func (s *PGStore) UpdateAmountByOwner(ctx context.Context, id int64, owner string, amount float64) error {
	res, err := s.db.ExecContext(ctx,
		`update cards set amount=$1 where id=$2 and owner=$3`, amount, id, owner)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (s *PGStore) DeleteByIDAndOwner(ctx context.Context, id int64, owner string) error {
	res, err := s.db.ExecContext(ctx,
		`delete from cards where id=$1 and owner=$2`, id, owner)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCard(row *sql.Row) (*Card, error) {
	var c Card
	err := row.Scan(&c.ID, &c.Amount, &c.Owner, &c.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCards(rows *sql.Rows) ([]Card, error) {
	defer rows.Close()
	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Amount, &c.Owner, &c.OwnerID); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

package card

import "context"

// Store describes the persistence operations required by the card service.
// Owner-scoped lookups treat a card owned by someone else exactly like a
// missing card: both report ErrNotFound.
type Store interface {
	Create(ctx context.Context, c *Card) error
	FindByID(ctx context.Context, id int64) (*Card, error)
	FindByIDAndOwner(ctx context.Context, id int64, owner string) (*Card, error)
	ListAll(ctx context.Context, page PageRequest) ([]Card, error)
	ListByOwner(ctx context.Context, owner string, page PageRequest) ([]Card, error)
	UpdateAmountByOwner(ctx context.Context, id int64, owner string, amount float64) error
	DeleteByIDAndOwner(ctx context.Context, id int64, owner string) error
}

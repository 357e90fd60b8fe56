package card

import (
	"context"
	"errors"

	"cardvault.org/internal/auth"
)

// Service applies the access-control rules governing every card operation.
// Each method takes the identity resolved by the authentication filter; the
// role gate runs before any ownership logic or store access.
type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("card: store is required")
	}
	return &Service{store: store}, nil
}

func require(identity auth.Identity, perm auth.Permission) error {
	if !identity.Role.Can(perm) {
		return ErrForbidden
	}
	return nil
}

// Get returns a single card. Admins see any card; everyone else only their
// own. A foreign card is reported as ErrNotFound, never as forbidden, so the
// existence of other users' cards is not disclosed.
func (s *Service) Get(ctx context.Context, identity auth.Identity, id int64) (*Card, error) {
	if err := require(identity, auth.PermCardsRead); err != nil {
		return nil, err
	}
	if identity.Role.Can(auth.PermCardsReadAll) {
		return s.store.FindByID(ctx, id)
	}
	return s.store.FindByIDAndOwner(ctx, id, identity.Email)
}

// List returns a page of cards: all owners for admins, the caller's own cards
// otherwise. Default order is amount ascending; admin listings break ties by
// id ascending.
func (s *Service) List(ctx context.Context, identity auth.Identity, page PageRequest) ([]Card, error) {
	if err := require(identity, auth.PermCardsRead); err != nil {
		return nil, err
	}
	page = page.normalize()
	if identity.Role.Can(auth.PermCardsReadAll) {
		return s.store.ListAll(ctx, page)
	}
	return s.store.ListByOwner(ctx, identity.Email, page)
}

// Create persists a card under the caller's identity. The owner reference is
// always forced to the authenticated identity; request input can never set
// it. A zero amount is rejected before any store call.
func (s *Service) Create(ctx context.Context, identity auth.Identity, amount float64) (*Card, error) {
	if err := require(identity, auth.PermCardsWrite); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	c := &Card{
		Amount:  amount,
		Owner:   identity.Email,
		OwnerID: identity.ID,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the amount of a card the caller owns. Admins are not
// exempt from the ownership check on mutations; any non-owned or missing id
// yields ErrNotFound.
func (s *Service) Update(ctx context.Context, identity auth.Identity, id int64, amount float64) error {
	if err := require(identity, auth.PermCardsWrite); err != nil {
		return err
	}
	return s.store.UpdateAmountByOwner(ctx, id, identity.Email, amount)
}

// Delete removes a card the caller owns, under the same ownership rule as
// Update.
func (s *Service) Delete(ctx context.Context, identity auth.Identity, id int64) error {
	if err := require(identity, auth.PermCardsWrite); err != nil {
		return err
	}
	return s.store.DeleteByIDAndOwner(ctx, id, identity.Email)
}

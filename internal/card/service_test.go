package card

import (
	"context"
	"errors"
	"testing"

	"cardvault.org/internal/auth"
)

var (
	sarah = auth.Identity{ID: 1, Email: "sarah@x.com", Role: auth.RoleOwner}
	kumar = auth.Identity{ID: 2, Email: "kumar@x.com", Role: auth.RoleOwner}
	admin = auth.Identity{ID: 3, Email: "admin@x.com", Role: auth.RoleAdmin}
	plain = auth.Identity{ID: 4, Email: "plain@x.com", Role: auth.RoleUser}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewMemoryStore())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func mustCreate(t *testing.T, svc *Service, identity auth.Identity, amount float64) *Card {
	t.Helper()
	c, err := svc.Create(context.Background(), identity, amount)
	if err != nil {
		t.Fatalf("Create(%s, %v): %v", identity.Email, amount, err)
	}
	return c
}

func TestCreateForcesOwner(t *testing.T) {
	svc := newTestService(t)

	c := mustCreate(t, svc, sarah, 100)
	if c.Owner != sarah.Email || c.OwnerID != sarah.ID {
		t.Fatalf("owner not forced to caller: %+v", c)
	}
	if c.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestCreateRejectsZeroAmount(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), sarah, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	// Nothing may be persisted by the rejected call.
	cards, err := svc.List(context.Background(), sarah, PageRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty store, got %d cards", len(cards))
	}
}

func TestRoleGateRejectsPlainUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, plain, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Get: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.List(ctx, plain, PageRequest{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("List: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, plain, 100); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Create: expected ErrForbidden, got %v", err)
	}
	if err := svc.Update(ctx, plain, 1, 50); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, plain, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Delete: expected ErrForbidden, got %v", err)
	}
}

func TestGetScopesByOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCreate(t, svc, sarah, 100)

	got, err := svc.Get(ctx, sarah, c.ID)
	if err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if got.Amount != 100 {
		t.Fatalf("unexpected amount: %v", got.Amount)
	}

	// A foreign card must look exactly like a missing one.
	if _, err := svc.Get(ctx, kumar, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, sarah, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing Get: expected ErrNotFound, got %v", err)
	}

	// Admin read scope expands to all cards.
	if _, err := svc.Get(ctx, admin, c.ID); err != nil {
		t.Fatalf("admin Get: %v", err)
	}
}

func TestListScoping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustCreate(t, svc, sarah, 300)
	mustCreate(t, svc, sarah, 100)
	mustCreate(t, svc, kumar, 200)

	own, err := svc.List(ctx, sarah, PageRequest{})
	if err != nil {
		t.Fatalf("owner List: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("expected 2 own cards, got %d", len(own))
	}
	if own[0].Amount != 100 || own[1].Amount != 300 {
		t.Fatalf("expected amount ascending, got %v, %v", own[0].Amount, own[1].Amount)
	}
	for _, c := range own {
		if c.Owner != sarah.Email {
			t.Fatalf("foreign card in owner listing: %+v", c)
		}
	}

	all, err := svc.List(ctx, admin, PageRequest{})
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 cards for admin, got %d", len(all))
	}
}

func TestListAdminBreaksTiesByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	first := mustCreate(t, svc, sarah, 100)
	second := mustCreate(t, svc, kumar, 100)

	all, err := svc.List(ctx, admin, PageRequest{})
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("expected id-ascending tie-break, got %+v", all)
	}
}

func TestListPaginationAndSort(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, amount := range []float64{50, 10, 40, 20, 30} {
		mustCreate(t, svc, sarah, amount)
	}

	page, err := svc.List(ctx, sarah, PageRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(page) != 2 || page[0].Amount != 30 || page[1].Amount != 40 {
		t.Fatalf("unexpected page: %+v", page)
	}

	descending, err := svc.List(ctx, sarah, PageRequest{Size: 2, Sort: "amount,desc"})
	if err != nil {
		t.Fatalf("List desc: %v", err)
	}
	if len(descending) != 2 || descending[0].Amount != 50 || descending[1].Amount != 40 {
		t.Fatalf("unexpected desc page: %+v", descending)
	}

	if _, err := svc.List(ctx, sarah, PageRequest{Sort: "owner"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unsupported sort, got %v", err)
	}
}

func TestUpdateIsOwnerScopedForEveryRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCreate(t, svc, sarah, 100)

	if err := svc.Update(ctx, sarah, c.ID, 250); err != nil {
		t.Fatalf("owner Update: %v", err)
	}
	got, err := svc.Get(ctx, sarah, c.ID)
	if err != nil || got.Amount != 250 {
		t.Fatalf("update not applied: card=%+v err=%v", got, err)
	}
	if got.Owner != sarah.Email {
		t.Fatalf("update changed owner: %+v", got)
	}

	if err := svc.Update(ctx, kumar, c.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign Update: expected ErrNotFound, got %v", err)
	}
	// Admins are not exempt from the ownership check on writes.
	if err := svc.Update(ctx, admin, c.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("admin Update: expected ErrNotFound, got %v", err)
	}
	if err := svc.Update(ctx, sarah, 99999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing Update: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsOwnerScopedForEveryRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCreate(t, svc, sarah, 100)

	if err := svc.Delete(ctx, kumar, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign Delete: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, admin, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("admin Delete: expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, sarah, c.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	if _, err := svc.Get(ctx, sarah, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected card gone, got %v", err)
	}
}

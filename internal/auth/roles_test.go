package auth

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"USER":   RoleUser,
		"owner":  RoleOwner,
		" Admin": RoleAdmin,
	} {
		got, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q)=%q, want %q", raw, got, want)
		}
	}

	for _, raw := range []string{"", "root", "SUPERADMIN"} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseRole(%q): expected ErrInvalidInput, got %v", raw, err)
		}
	}
}

func TestRolePermissionTable(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleUser, PermCardsRead, false},
		{RoleUser, PermCardsWrite, false},
		{RoleOwner, PermCardsRead, true},
		{RoleOwner, PermCardsWrite, true},
		{RoleOwner, PermCardsReadAll, false},
		{RoleAdmin, PermCardsRead, true},
		{RoleAdmin, PermCardsWrite, true},
		{RoleAdmin, PermCardsReadAll, true},
		{Role("GUEST"), PermCardsRead, false},
	}
	for _, tc := range cases {
		if got := tc.role.Can(tc.perm); got != tc.want {
			t.Fatalf("%s.Can(%s)=%v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestContextIdentityRoundTrip(t *testing.T) {
	identity := Identity{ID: 7, Email: "u@x.com", Role: RoleAdmin}
	ctx := ContextWithIdentity(t.Context(), identity)

	got, ok := IdentityFromContext(ctx)
	if !ok {
		t.Fatalf("expected identity in context")
	}
	if got.ID != 7 || got.Email != "u@x.com" || got.Role != RoleAdmin {
		t.Fatalf("unexpected identity: %+v", got)
	}

	if _, ok := IdentityFromContext(t.Context()); ok {
		t.Fatalf("expected no identity in empty context")
	}
}

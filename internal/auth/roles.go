package auth

import (
	"fmt"
	"strings"
)

// Role is the coarse permission tier attached to every identity. The set is
// closed: authorization decisions go through the permission table below, never
// through string comparison on handler paths.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// Permission is a capability key gating an operation class.
type Permission string

const (
	PermCardsRead    Permission = "cards.read"
	PermCardsWrite   Permission = "cards.write"
	PermCardsReadAll Permission = "cards.read_all"
)

// rolePermissions maps each role to the permissions it holds. A plain USER
// can authenticate but holds no card permissions.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleUser: {},
	RoleOwner: {
		PermCardsRead:  {},
		PermCardsWrite: {},
	},
	RoleAdmin: {
		PermCardsRead:    {},
		PermCardsWrite:   {},
		PermCardsReadAll: {},
	},
}

// ParseRole maps raw input onto the closed role set.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := rolePermissions[role]; !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
	}
	return role, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role holds the given permission.
func (r Role) Can(perm Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	_, ok = perms[perm]
	return ok
}

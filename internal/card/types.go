package card

import (
	"errors"
	"fmt"
	"strings"
)

// Card is a monetary record owned by exactly one identity. Owner is the
// owning identity's login email, fixed at creation; no operation may change
// it. OwnerID references the identities row.
type Card struct {
	ID      int64   `json:"id"`
	Amount  float64 `json:"amount"`
	Owner   string  `json:"owner"`
	OwnerID int64   `json:"ownerId"`
}

var (
	ErrNotFound      = errors.New("card: not found")
	ErrForbidden     = errors.New("card: forbidden")
	ErrInvalidAmount = errors.New("card: amount cannot be zero")
	ErrInvalidInput  = errors.New("card: invalid input")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest carries caller-supplied pagination and ordering for listings.
// Zero values fall back to server defaults.
type PageRequest struct {
	Page int
	Size int
	Sort string // "amount" or "id", optionally suffixed with ",desc"
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// orderBy validates the sort parameter against a fixed field whitelist and
// returns a safe SQL order clause. adminTie appends id ascending as the
// tie-break used for global listings.
func (p PageRequest) orderBy(adminTie bool) (string, error) {
	field := "amount"
	desc := false
	if raw := strings.TrimSpace(p.Sort); raw != "" {
		parts := strings.Split(raw, ",")
		field = strings.ToLower(strings.TrimSpace(parts[0]))
		if field != "amount" && field != "id" {
			return "", fmt.Errorf("%w: unsupported sort field %q", ErrInvalidInput, parts[0])
		}
		if len(parts) > 2 {
			return "", fmt.Errorf("%w: malformed sort %q", ErrInvalidInput, raw)
		}
		if len(parts) == 2 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "asc":
			case "desc":
				desc = true
			default:
				return "", fmt.Errorf("%w: malformed sort %q", ErrInvalidInput, raw)
			}
		}
	}
	clause := field + " asc"
	if desc {
		clause = field + " desc"
	}
	if adminTie && field != "id" {
		clause += ", id asc"
	}
	return clause, nil
}

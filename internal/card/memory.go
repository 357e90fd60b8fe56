package card

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store in process memory. It backs tests and the
// no-DSN development mode of cmd/api.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	cards  map[int64]*Card
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: make(map[int64]*Card)}
}

func (s *MemoryStore) Create(ctx context.Context, c *Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	stored := *c
	s.cards[stored.ID] = &stored
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *MemoryStore) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok || c.Owner != owner {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *MemoryStore) ListAll(ctx context.Context, page PageRequest) ([]Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paginate(s.snapshot(func(*Card) bool { return true }), page, true)
}

func (s *MemoryStore) ListByOwner(ctx context.Context, owner string, page PageRequest) ([]Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paginate(s.snapshot(func(c *Card) bool { return c.Owner == owner }), page, false)
}

func (s *MemoryStore) UpdateAmountByOwner(ctx context.Context, id int64, owner string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.Owner != owner {
		return ErrNotFound
	}
	c.Amount = amount
	return nil
}

func (s *MemoryStore) DeleteByIDAndOwner(ctx context.Context, id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.Owner != owner {
		return ErrNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *MemoryStore) snapshot(keep func(*Card) bool) []Card {
	out := make([]Card, 0, len(s.cards))
	for _, c := range s.cards {
		if keep(c) {
			out = append(out, *c)
		}
	}
	return out
}

// paginate mirrors the SQL store's ordering contract so both implementations
// are interchangeable under the same tests.
func (s *MemoryStore) paginate(cards []Card, page PageRequest, adminTie bool) ([]Card, error) {
	order, err := page.orderBy(adminTie)
	if err != nil {
		return nil, err
	}
	desc := strings.Contains(order, "desc")
	byID := strings.HasPrefix(order, "id")
	sort.Slice(cards, func(i, j int) bool {
		if byID {
			if desc {
				return cards[i].ID > cards[j].ID
			}
			return cards[i].ID < cards[j].ID
		}
		if cards[i].Amount != cards[j].Amount {
			if desc {
				return cards[i].Amount > cards[j].Amount
			}
			return cards[i].Amount < cards[j].Amount
		}
		return cards[i].ID < cards[j].ID
	})

	start := page.Page * page.Size
	if start >= len(cards) {
		return nil, nil
	}
	end := start + page.Size
	if end > len(cards) {
		end = len(cards)
	}
	return cards[start:end], nil
}

package auth

import (
	"context"
	"sync"
	"time"
)

var _ IdentityStore = (*MemoryStore)(nil)

// MemoryStore implements IdentityStore in process memory. It backs tests and
// the no-DSN development mode of cmd/api.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*Identity
	byEmail map[string]*Identity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[int64]*Identity),
		byEmail: make(map[string]*Identity),
	}
}

func (s *MemoryStore) Create(ctx context.Context, identity *Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[identity.Email]; ok {
		return ErrAlreadyExists
	}
	s.nextID++
	identity.ID = s.nextID
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now().UTC()
	}
	stored := *identity
	s.byID[stored.ID] = &stored
	s.byEmail[stored.Email] = &stored
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *identity
	return &out, nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	out := *identity
	return &out, nil
}

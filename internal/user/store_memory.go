package user

import (
	"context"
	"sync"

	"lifelink/pkg/domain"
	"lifelink/pkg/platform/sentinel"
)

// InMemory is the default user store. Reads and writes copy records so
// callers never alias internal state.
type InMemory struct {
	mu    sync.RWMutex
	users map[domain.UserID]*User
	order []domain.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[domain.UserID]*User)}
}

func (s *InMemory) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; exists {
		return sentinel.ErrConflict
	}
	s.users[u.ID] = u.Clone()
	s.order = append(s.order, u.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *InMemory) Update(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.users[u.ID] = u.Clone()
	return nil
}

func (s *InMemory) ListDonors(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var donors []*User
	for _, id := range s.order {
		if u := s.users[id]; u.IsDonor() {
			donors = append(donors, u.Clone())
		}
	}
	return donors, nil
}

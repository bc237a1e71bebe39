package history

import (
	"context"
	"sync"

	"lifelink/pkg/domain"
)

// InMemory is the default history store.
type InMemory struct {
	mu      sync.RWMutex
	byDonor map[domain.UserID][]*Entry
}

func NewInMemory() *InMemory {
	return &InMemory{byDonor: make(map[domain.UserID][]*Entry)}
}

func (s *InMemory) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.byDonor[entry.DonorID] = append(s.byDonor[entry.DonorID], &cp)
	return nil
}

func (s *InMemory) ListByDonor(_ context.Context, donorID domain.UserID) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.byDonor[donorID]
	out := make([]*Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		cp := *entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

package request

import (
	"context"
	"sync"

	"lifelink/pkg/domain"
	"lifelink/pkg/platform/sentinel"
)

// InMemory is the default request store. Reads and writes copy records so
// callers never alias internal state.
type InMemory struct {
	mu       sync.RWMutex
	requests map[domain.RequestID]*Request
	order    []domain.RequestID
}

func NewInMemory() *InMemory {
	return &InMemory{requests: make(map[domain.RequestID]*Request)}
}

func (s *InMemory) Create(_ context.Context, r *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[r.ID]; exists {
		return sentinel.ErrConflict
	}
	s.requests[r.ID] = r.Clone()
	s.order = append(s.order, r.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.RequestID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *InMemory) Update(_ context.Context, r *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.requests[r.ID] = r.Clone()
	return nil
}

func (s *InMemory) List(_ context.Context, status *domain.RequestStatus) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Request
	for i := len(s.order) - 1; i >= 0; i-- {
		r := s.requests[s.order[i]]
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, r.Clone())
	}
	return out, nil
}

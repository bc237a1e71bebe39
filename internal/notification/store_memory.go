package notification

import (
	"context"
	"sync"

	"lifelink/pkg/domain"
	"lifelink/pkg/platform/sentinel"
)

// InMemory is the default inbox store.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[domain.NotificationID]*Notification
	inboxes map[domain.UserID][]domain.NotificationID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[domain.NotificationID]*Notification),
		inboxes: make(map[domain.UserID][]domain.NotificationID),
	}
}

func (s *InMemory) Append(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.byID[n.ID] = &cp
	s.inboxes[n.Target] = append(s.inboxes[n.Target], n.ID)
	return nil
}

func (s *InMemory) ListByTarget(_ context.Context, target domain.UserID) ([]*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.inboxes[target]
	out := make([]*Notification, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		cp := *s.byID[ids[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemory) MarkRead(_ context.Context, id domain.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	n.Read = true
	return nil
}

func (s *InMemory) UnreadCount(_ context.Context, target domain.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, id := range s.inboxes[target] {
		if !s.byID[id].Read {
			count++
		}
	}
	return count, nil
}

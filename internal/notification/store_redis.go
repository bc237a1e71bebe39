package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lifelink/pkg/domain"
	"lifelink/pkg/platform/sentinel"
)

const (
	inboxKeyPrefix = "lifelink:inbox:"
	itemKeyPrefix  = "lifelink:notif:"
)

// RedisStore is a Redis-backed inbox for deployments where the UI tier runs
// separately from the engine. Each notification lives under its own key and
// per-target inboxes are Redis lists of IDs, newest first.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func inboxKey(target domain.UserID) string { return inboxKeyPrefix + target.String() }
func itemKey(id domain.NotificationID) string {
	return itemKeyPrefix + id.String()
}

func (s *RedisStore) Append(ctx context.Context, n *Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, itemKey(n.ID), payload, 0)
	pipe.LPush(ctx, inboxKey(n.Target), n.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) ListByTarget(ctx context.Context, target domain.UserID) ([]*Notification, error) {
	ids, err := s.client.LRange(ctx, inboxKey(target), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Notification, 0, len(ids))
	for _, raw := range ids {
		id, err := domain.ParseNotificationID(raw)
		if err != nil {
			continue
		}
		n, err := s.get(ctx, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *RedisStore) MarkRead(ctx context.Context, id domain.NotificationID) error {
	n, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	n.Read = true
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return s.client.Set(ctx, itemKey(id), payload, 0).Err()
}

func (s *RedisStore) UnreadCount(ctx context.Context, target domain.UserID) (int, error) {
	all, err := s.ListByTarget(ctx, target)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range all {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *RedisStore) get(ctx context.Context, id domain.NotificationID) (*Notification, error) {
	raw, err := s.client.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var n Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &n, nil
}

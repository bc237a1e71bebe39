//go:build integration

package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lifelink/pkg/domain"
	"lifelink/pkg/platform/sentinel"
	"lifelink/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
	ctx   context.Context
	now   time.Time
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, &RedisStoreSuite{redis: containers.NewRedisContainer(t)})
}

func (s *RedisStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.store = NewRedisStore(s.redis.Client)
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (s *RedisStoreSuite) TestAppendAndList() {
	target := domain.NewUserID()

	first := New(target, "Emergency Nearby!", "O+ needed", CategoryAlert, s.now)
	second := New(target, "Donor Found!", "Ravi accepted", CategorySuccess, s.now.Add(time.Minute))
	s.Require().NoError(s.store.Append(s.ctx, first))
	s.Require().NoError(s.store.Append(s.ctx, second))

	inbox, err := s.store.ListByTarget(s.ctx, target)
	s.Require().NoError(err)
	s.Require().Len(inbox, 2)
	s.Equal(second.ID, inbox[0].ID)
	s.Equal(first.ID, inbox[1].ID)
	s.Equal(CategoryAlert, inbox[1].Category)
	s.False(inbox[0].Read)

	other, err := s.store.ListByTarget(s.ctx, domain.NewUserID())
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *RedisStoreSuite) TestMarkRead() {
	target := domain.NewUserID()
	n := New(target, "Emergency Nearby!", "O+ needed", CategoryAlert, s.now)
	s.Require().NoError(s.store.Append(s.ctx, n))

	s.Require().NoError(s.store.MarkRead(s.ctx, n.ID))

	inbox, err := s.store.ListByTarget(s.ctx, target)
	s.Require().NoError(err)
	s.Require().Len(inbox, 1)
	s.True(inbox[0].Read)

	err = s.store.MarkRead(s.ctx, domain.NewNotificationID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestUnreadCount() {
	target := domain.NewUserID()

	first := New(target, "a", "a", CategoryInfo, s.now)
	second := New(target, "b", "b", CategoryInfo, s.now)
	s.Require().NoError(s.store.Append(s.ctx, first))
	s.Require().NoError(s.store.Append(s.ctx, second))

	count, err := s.store.UnreadCount(s.ctx, target)
	s.Require().NoError(err)
	s.Equal(2, count)

	s.Require().NoError(s.store.MarkRead(s.ctx, second.ID))

	count, err = s.store.UnreadCount(s.ctx, target)
	s.Require().NoError(err)
	s.Equal(1, count)
}

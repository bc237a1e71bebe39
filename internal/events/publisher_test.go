package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
)

var eventNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type captureSink struct {
	events []Event
	err    error
}

func (c *captureSink) Publish(_ context.Context, e Event) error {
	c.events = append(c.events, e)
	return c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmit(t *testing.T) {
	t.Run("delivers to the sink with a fresh id", func(t *testing.T) {
		sink := &captureSink{}
		pub := NewPublisher(sink, testLogger())

		req := request.New(domain.NewUserID(), "Meera", "City Hospital", domain.BloodGroupOPos, 2, domain.UrgencyHigh, false, eventNow, user.Location{}, eventNow)
		pub.Emit(context.Background(), RequestCreated(req, eventNow))

		require.Len(t, sink.events, 1)
		got := sink.events[0]
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, TypeRequestCreated, got.Type)
		assert.Equal(t, req.ID, got.RequestID)
		assert.Equal(t, req.ID.String(), got.Key())
	})

	t.Run("sink failures are swallowed", func(t *testing.T) {
		sink := &captureSink{err: errors.New("brokers down")}
		pub := NewPublisher(sink, testLogger())

		u := user.NewUser("Ravi", domain.RoleDonor, "ravi@example.com", "+91 9876543210", domain.BloodGroupOPos, user.Location{}, eventNow)
		pub.Emit(context.Background(), UserRegistered(u, eventNow))

		assert.Len(t, sink.events, 1)
	})

	t.Run("nil sink is a no-op", func(t *testing.T) {
		pub := NewPublisher(nil, testLogger())
		u := user.NewUser("Ravi", domain.RoleDonor, "ravi@example.com", "+91 9876543210", domain.BloodGroupOPos, user.Location{}, eventNow)
		pub.Emit(context.Background(), UserRegistered(u, eventNow))
	})
}

func TestEventKey(t *testing.T) {
	userID := domain.NewUserID()
	reqID := domain.NewRequestID()

	assert.Equal(t, reqID.String(), Event{RequestID: reqID, UserID: userID}.Key())
	assert.Equal(t, userID.String(), Event{UserID: userID}.Key())
}

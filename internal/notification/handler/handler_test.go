package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifelink/internal/notification"
	"lifelink/pkg/domain"
)

func newTestRouter(t *testing.T) (chi.Router, *notification.InMemory) {
	t.Helper()
	store := notification.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(store, logger).Register(r)
	return r, store
}

func TestInboxEndpoints(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("lists the target's inbox", func(t *testing.T) {
		router, store := newTestRouter(t)
		target := domain.NewUserID()
		n := notification.New(target, "Emergency Nearby!", "O+ needed", notification.CategoryAlert, now)
		require.NoError(t, store.Append(ctx, n))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?target="+target.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var items []notification.Notification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Emergency Nearby!", items[0].Title)
	})

	t.Run("empty inboxes render as an empty array", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?target="+domain.NewUserID().String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("missing target is rejected", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("mark read flips the flag and decrements unread", func(t *testing.T) {
		router, store := newTestRouter(t)
		target := domain.NewUserID()
		n := notification.New(target, "Donor Found!", "Ravi accepted", notification.CategorySuccess, now)
		require.NoError(t, store.Append(ctx, n))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/"+n.ID.String()+"/read", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/unread-count?target="+target.String(), nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"unread":0}`, w.Body.String())
	})

	t.Run("marking an unknown notification is 404", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notifications/"+domain.NewNotificationID().String()+"/read", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

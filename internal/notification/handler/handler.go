// Package handler exposes the notification inbox over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lifelink/internal/notification"
	"lifelink/internal/platform/middleware"
	"lifelink/internal/transport/http/shared"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
	"lifelink/pkg/platform/sentinel"
)

// Store is the inbox surface the HTTP layer reads from.
type Store interface {
	ListByTarget(ctx context.Context, target domain.UserID) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id domain.NotificationID) error
	UnreadCount(ctx context.Context, target domain.UserID) (int, error)
}

// Handler handles notification endpoints.
type Handler struct {
	logger *slog.Logger
	store  Store
}

// New creates a new notification Handler.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(inbox chi.Router) {
		inbox.Use(middleware.Recovery(h.logger))
		inbox.Use(middleware.RequestID)
		inbox.Use(middleware.Logger(h.logger))
		inbox.Use(middleware.Timeout(10 * time.Second))
		inbox.Use(middleware.ContentTypeJSON)

		inbox.Get("/notifications", h.handleList)
		inbox.Get("/notifications/unread-count", h.handleUnreadCount)
		inbox.Post("/notifications/{notificationID}/read", h.handleMarkRead)
	})
}

func (h *Handler) targetFromQuery(r *http.Request) (domain.UserID, error) {
	return domain.ParseUserID(r.URL.Query().Get("target"))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	target, err := h.targetFromQuery(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	items, err := h.store.ListByTarget(r.Context(), target)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "inbox list failed", "target", target.String(), "error", err.Error())
		shared.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "list notifications", err))
		return
	}
	if items == nil {
		items = []*notification.Notification{}
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	target, err := h.targetFromQuery(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	count, err := h.store.UnreadCount(r.Context(), target)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "unread count failed", "target", target.String(), "error", err.Error())
		shared.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "count notifications", err))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseNotificationID(chi.URLParam(r, "notificationID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	err = h.store.MarkRead(r.Context(), id)
	if errors.Is(err, sentinel.ErrNotFound) {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "notification not found"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "mark read failed", "notification_id", id.String(), "error", err.Error())
		shared.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "mark notification read", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

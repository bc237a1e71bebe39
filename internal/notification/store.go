package notification

import (
	"context"

	"lifelink/pkg/domain"
)

// Store is the notification inbox. Implementations return sentinel errors
// for infrastructure facts; services translate them into domain errors.
type Store interface {
	Append(ctx context.Context, n *Notification) error
	// ListByTarget returns the target's inbox, most recent first.
	ListByTarget(ctx context.Context, target domain.UserID) ([]*Notification, error)
	MarkRead(ctx context.Context, id domain.NotificationID) error
	UnreadCount(ctx context.Context, target domain.UserID) (int, error)
}

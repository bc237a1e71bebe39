package notification

import (
	"time"

	"lifelink/pkg/domain"
)

// Category drives how the UI renders a notification.
type Category string

const (
	CategoryAlert   Category = "ALERT"
	CategoryInfo    Category = "INFO"
	CategorySuccess Category = "SUCCESS"
)

// Notification is one inbox entry for a single user. Append-only; the only
// mutation is flipping the read flag.
type Notification struct {
	ID        domain.NotificationID `json:"id"`
	Target    domain.UserID         `json:"target"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	Category  Category              `json:"category"`
	Timestamp time.Time             `json:"timestamp"`
	Read      bool                  `json:"read"`
}

// New builds an unread notification for the target user.
func New(target domain.UserID, title, message string, category Category, now time.Time) *Notification {
	return &Notification{
		ID:        domain.NewNotificationID(),
		Target:    target,
		Title:     title,
		Message:   message,
		Category:  category,
		Timestamp: now,
	}
}

package history

import (
	"context"

	"lifelink/pkg/domain"
)

// Store persists donor history entries.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	// ListByDonor returns the donor's entries, newest first.
	ListByDonor(ctx context.Context, donorID domain.UserID) ([]*Entry, error)
}

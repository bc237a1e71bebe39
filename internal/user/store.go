package user

import (
	"context"

	"lifelink/pkg/domain"
)

// Store persists user records. Implementations return sentinel errors for
// infrastructure facts; services translate them into domain errors.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id domain.UserID) (*User, error)
	Update(ctx context.Context, u *User) error
	// ListDonors returns every donor account, insertion-ordered. Filtering
	// (availability, blood group) is a service concern.
	ListDonors(ctx context.Context) ([]*User, error)
}

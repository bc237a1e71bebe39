package request

import (
	"context"

	"lifelink/pkg/domain"
)

// Store persists request records. Implementations return sentinel errors for
// infrastructure facts; services translate them into domain errors.
type Store interface {
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id domain.RequestID) (*Request, error)
	Update(ctx context.Context, r *Request) error
	// List returns requests most-recent-first. A nil filter returns all.
	List(ctx context.Context, status *domain.RequestStatus) ([]*Request, error)
}

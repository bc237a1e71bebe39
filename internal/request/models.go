package request

import (
	"errors"
	"time"

	"lifelink/internal/user"
	"lifelink/pkg/domain"
)

// Transition errors. These are facts about the request's state; the
// coordinator translates them into domain error codes so callers can render
// "fulfilled by others" vs "already accepted" vs "ineligible" distinctly.
var (
	ErrFulfilled       = errors.New("request already fulfilled")
	ErrAtCapacity      = errors.New("request at donor capacity")
	ErrDuplicateAccept = errors.New("donor already accepted request")
	ErrNotAccepted     = errors.New("donor has not accepted request")
	ErrInvalidState    = errors.New("invalid state for transition")
)

// Request is a blood request and the donors committed to it.
//
// Invariants: len(AcceptedBy) <= Units with no duplicates; Status is a pure
// function of the transition history and never written directly by callers.
type Request struct {
	ID            domain.RequestID
	RequesterID   domain.UserID
	RequesterName string
	HospitalName  string
	BloodGroup    domain.BloodGroup
	Units         int
	Urgency       domain.Urgency
	IsPreBooking  bool
	RequiredDate  time.Time
	Location      user.Location
	Status        domain.RequestStatus
	CreatedAt     time.Time
	AcceptedBy    []domain.UserID
}

// New builds a PENDING request with no responders.
func New(requesterID domain.UserID, requesterName, hospitalName string, group domain.BloodGroup, units int, urgency domain.Urgency, preBooking bool, requiredDate time.Time, loc user.Location, now time.Time) *Request {
	return &Request{
		ID:            domain.NewRequestID(),
		RequesterID:   requesterID,
		RequesterName: requesterName,
		HospitalName:  hospitalName,
		BloodGroup:    group,
		Units:         units,
		Urgency:       urgency,
		IsPreBooking:  preBooking,
		RequiredDate:  requiredDate,
		Location:      loc,
		Status:        domain.StatusPending,
		CreatedAt:     now,
	}
}

// HasAccepted reports whether the donor is currently committed.
func (r *Request) HasAccepted(donorID domain.UserID) bool {
	for _, id := range r.AcceptedBy {
		if id == donorID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without aliasing store
// state.
func (r *Request) Clone() *Request {
	cp := *r
	cp.AcceptedBy = append([]domain.UserID(nil), r.AcceptedBy...)
	return &cp
}

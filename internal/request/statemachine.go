package request

import "lifelink/pkg/domain"

// Lifecycle transitions. Each method validates its preconditions and either
// mutates the request or returns an error leaving it untouched. Donor
// eligibility is deliberately not checked here: the request machine is pure
// per-request state, and cross-entity rules belong to the coordinator.

// Accept commits a donor to the request. Status becomes ACCEPTED on the
// first responder and stays ACCEPTED until capacity: the status reflects
// "has at least one responder", not "fully staffed", so further donors may
// accept until len(AcceptedBy) reaches Units.
//
// Errors: ErrFulfilled when the request is already FULFILLED or EXPIRED,
// ErrAtCapacity when every unit has a committed donor, ErrDuplicateAccept
// when this donor is already committed.
func (r *Request) Accept(donorID domain.UserID) error {
	if r.Status.Terminal() {
		return ErrFulfilled
	}
	if len(r.AcceptedBy) >= r.Units {
		return ErrAtCapacity
	}
	if r.HasAccepted(donorID) {
		return ErrDuplicateAccept
	}
	r.AcceptedBy = append(r.AcceptedBy, donorID)
	r.Status = domain.StatusAccepted
	return nil
}

// Confirm marks the donation as completed by the requester. The request is
// FULFILLED unconditionally, even when other donors are still pending.
//
// Errors: ErrInvalidState when the request already expired, ErrNotAccepted
// when the donor never committed.
func (r *Request) Confirm(donorID domain.UserID) error {
	if r.Status == domain.StatusExpired {
		return ErrInvalidState
	}
	if !r.HasAccepted(donorID) {
		return ErrNotAccepted
	}
	r.Status = domain.StatusFulfilled
	return nil
}

// ReportNoShow withdraws a committed donor. The request regresses to
// PENDING when nobody is left, otherwise stays ACCEPTED. Valid from
// ACCEPTED only.
//
// Errors: ErrInvalidState when the request is not ACCEPTED, ErrNotAccepted
// when the donor never committed.
func (r *Request) ReportNoShow(donorID domain.UserID) error {
	if r.Status != domain.StatusAccepted {
		return ErrInvalidState
	}
	if !r.HasAccepted(donorID) {
		return ErrNotAccepted
	}
	kept := r.AcceptedBy[:0]
	for _, id := range r.AcceptedBy {
		if id != donorID {
			kept = append(kept, id)
		}
	}
	r.AcceptedBy = kept
	if len(r.AcceptedBy) == 0 {
		r.Status = domain.StatusPending
	}
	return nil
}

// Expire terminates the request. The engine never schedules expiry itself;
// an external scheduler drives this transition.
//
// Errors: ErrInvalidState when the request is already terminal.
func (r *Request) Expire() error {
	if r.Status.Terminal() {
		return ErrInvalidState
	}
	r.Status = domain.StatusExpired
	return nil
}

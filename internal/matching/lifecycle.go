package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lifelink/internal/donor"
	"lifelink/internal/events"
	"lifelink/internal/history"
	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
)

// CreateRequestParams carries validated input for a new blood request.
type CreateRequestParams struct {
	RequesterID  domain.UserID
	HospitalName string
	BloodGroup   domain.BloodGroup
	Units        int
	Urgency      domain.Urgency
	IsPreBooking bool
	RequiredDate time.Time
	Location     user.Location
}

func (p CreateRequestParams) validate() error {
	if strings.TrimSpace(p.HospitalName) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "hospital name is required")
	}
	if p.Units < 1 {
		return dErrors.New(dErrors.CodeInvalidInput, "units must be at least 1")
	}
	if p.IsPreBooking && p.RequiredDate.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "pre-bookings require a scheduled date")
	}
	return nil
}

// CreateRequest opens a PENDING request and fans out notifications to every
// available, eligible donor of the matching blood group. Fan-out and event
// publishing are best-effort; a created request is never rolled back over
// them. Any registered account may open a request.
//
// Errors: CodeInvalidInput, CodeNotFound when the requester does not exist.
func (s *Service) CreateRequest(ctx context.Context, params CreateRequestParams) (*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.CreateRequest")
	defer span.End()
	start := s.now()
	defer func() { s.metrics.ObserveActionLatency("create_request", time.Since(start)) }()

	if err := params.validate(); err != nil {
		return nil, err
	}
	requester, err := s.findUser(ctx, params.RequesterID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	req := request.New(
		requester.ID, requester.Name, params.HospitalName,
		params.BloodGroup, params.Units, params.Urgency,
		params.IsPreBooking, params.RequiredDate, params.Location, now,
	)
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create request", err)
	}
	s.metrics.IncrementRequestsCreated()

	donors, err := s.users.ListDonors(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "donor fan-out skipped", "request_id", req.ID.String(), "error", err)
	} else {
		s.notifier.RequestCreated(ctx, req, donors, now)
	}
	s.publisher.Emit(ctx, events.RequestCreated(req, now))

	s.logger.InfoContext(ctx, "request created",
		"request_id", req.ID.String(),
		"blood_group", string(req.BloodGroup),
		"units", req.Units,
		"urgency", string(req.Urgency),
	)
	return req, nil
}

// GetRequest fetches a request by ID.
func (s *Service) GetRequest(ctx context.Context, id domain.RequestID) (*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.GetRequest")
	defer span.End()
	return s.findRequest(ctx, id)
}

// ListRequests returns requests newest first, optionally filtered by status.
func (s *Service) ListRequests(ctx context.Context, status *domain.RequestStatus) ([]*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.ListRequests")
	defer span.End()

	out, err := s.requests.List(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list requests", err)
	}
	return out, nil
}

// AcceptRequest commits an eligible donor to the request. The donor must
// exist, hold the donor role, and pass eligibility at this instant; the
// request must have spare capacity. Accepts on the same request are
// serialized so capacity can never be oversubscribed.
//
// Errors: CodeNotFound, CodeRoleMismatch, CodeIneligible, CodeAtCapacity,
// CodeDuplicate, CodeFulfilled.
func (s *Service) AcceptRequest(ctx context.Context, requestID domain.RequestID, donorID domain.UserID) (*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.AcceptRequest")
	defer span.End()
	start := s.now()
	defer func() { s.metrics.ObserveActionLatency("accept", time.Since(start)) }()

	d, err := s.findUser(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if !d.IsDonor() {
		return nil, dErrors.New(dErrors.CodeRoleMismatch, "only donors can accept requests")
	}
	now := s.now()
	if verdict := donor.Evaluate(d, now); !verdict.Eligible {
		s.metrics.IncrementAcceptOutcome("ineligible")
		return nil, dErrors.New(dErrors.CodeIneligible, ineligibleMessage(verdict))
	}

	lock := s.lockFor(requestID)
	lock.Lock()
	defer lock.Unlock()

	req, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := req.Accept(donorID); err != nil {
		s.metrics.IncrementAcceptOutcome(acceptOutcome(err))
		return nil, translateTransition(err)
	}
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update request", err)
	}
	s.metrics.IncrementAcceptOutcome("accepted")

	s.notifier.RequestAccepted(ctx, req, d, now)
	s.publisher.Emit(ctx, events.RequestAccepted(req, donorID, now))

	s.logger.InfoContext(ctx, "request accepted",
		"request_id", req.ID.String(),
		"donor_id", donorID.String(),
		"accepted", len(req.AcceptedBy),
		"units", req.Units,
	)
	return req, nil
}

// ConfirmDonation records that the donor showed up and donated. The request
// becomes FULFILLED and the donor is credited: +50 trust, one more lifetime
// donation, cooldown restarted, availability off, Verified Hero when the
// score crosses 500. A history entry is appended.
//
// Errors: CodeNotFound, CodeConflict when the request already expired or
// the donor never committed, CodeRoleMismatch.
func (s *Service) ConfirmDonation(ctx context.Context, requestID domain.RequestID, donorID domain.UserID) (*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.ConfirmDonation")
	defer span.End()
	start := s.now()
	defer func() { s.metrics.ObserveActionLatency("confirm", time.Since(start)) }()

	lock := s.lockFor(requestID)
	lock.Lock()
	defer lock.Unlock()

	req, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	d, err := s.findUser(ctx, donorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	credited, err := donor.ApplyDonationConfirmed(d, now)
	if err != nil {
		return nil, err
	}
	if err := req.Confirm(donorID); err != nil {
		return nil, translateTransition(err)
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update request", err)
	}
	if err := s.users.Update(ctx, credited); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update donor", err)
	}
	s.metrics.IncrementDonationsConfirmed()

	s.appendHistory(ctx, history.NewEntry(donorID, req.ID, history.KindDonation, req.HospitalName, req.BloodGroup, now))
	s.publisher.Emit(ctx, events.DonationConfirmed(req, credited, now))

	s.logger.InfoContext(ctx, "donation confirmed",
		"request_id", req.ID.String(),
		"donor_id", donorID.String(),
		"trust_score", credited.TrustScore,
		"donation_count", credited.DonationCount,
	)
	return req, nil
}

// ReportNoShow withdraws a committed donor who failed to appear. The donor
// loses 20 trust points (floored at zero); nothing else about the account
// changes, so the donor may re-accept the same request. The request
// regresses to PENDING when nobody else is committed.
//
// Errors: CodeNotFound, CodeConflict when the request is not ACCEPTED or
// the donor never committed, CodeRoleMismatch.
func (s *Service) ReportNoShow(ctx context.Context, requestID domain.RequestID, donorID domain.UserID) (*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.ReportNoShow")
	defer span.End()
	start := s.now()
	defer func() { s.metrics.ObserveActionLatency("no_show", time.Since(start)) }()

	lock := s.lockFor(requestID)
	lock.Lock()
	defer lock.Unlock()

	req, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	d, err := s.findUser(ctx, donorID)
	if err != nil {
		return nil, err
	}

	penalized, err := donor.ApplyNoShow(d)
	if err != nil {
		return nil, err
	}
	if err := req.ReportNoShow(donorID); err != nil {
		return nil, translateTransition(err)
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update request", err)
	}
	if err := s.users.Update(ctx, penalized); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update donor", err)
	}
	s.metrics.IncrementNoShows()

	now := s.now()
	s.appendHistory(ctx, history.NewEntry(donorID, req.ID, history.KindNoShow, req.HospitalName, req.BloodGroup, now))
	s.publisher.Emit(ctx, events.NoShowReported(req, penalized, now))

	s.logger.InfoContext(ctx, "no-show reported",
		"request_id", req.ID.String(),
		"donor_id", donorID.String(),
		"trust_score", penalized.TrustScore,
		"status", string(req.Status),
	)
	return req, nil
}

// ExpireRequest terminates a request that was never fulfilled. The engine
// keeps no timers; an external scheduler calls this.
//
// Errors: CodeNotFound, CodeConflict when the request is already terminal.
func (s *Service) ExpireRequest(ctx context.Context, requestID domain.RequestID) (*request.Request, error) {
	ctx, span := s.tracer.Start(ctx, "matching.ExpireRequest")
	defer span.End()

	lock := s.lockFor(requestID)
	lock.Lock()
	defer lock.Unlock()

	req, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := req.Expire(); err != nil {
		return nil, translateTransition(err)
	}
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update request", err)
	}

	s.publisher.Emit(ctx, events.RequestExpired(req, s.now()))
	s.logger.InfoContext(ctx, "request expired", "request_id", req.ID.String())
	return req, nil
}

// appendHistory is best-effort: the record is valuable but never worth
// failing the transition that produced it.
func (s *Service) appendHistory(ctx context.Context, entry *history.Entry) {
	if err := s.histories.Append(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "history entry dropped",
			"donor_id", entry.DonorID.String(),
			"kind", string(entry.Kind),
			"error", err,
		)
	}
}

func ineligibleMessage(v donor.Eligibility) string {
	if v.Reason == donor.ReasonCooldown {
		return fmt.Sprintf("donor in cooldown, %d days remaining", v.DaysRemaining)
	}
	return "donor reached the lifetime donation limit"
}

func acceptOutcome(err error) string {
	switch {
	case errors.Is(err, request.ErrFulfilled):
		return "fulfilled"
	case errors.Is(err, request.ErrAtCapacity):
		return "at_capacity"
	case errors.Is(err, request.ErrDuplicateAccept):
		return "duplicate"
	default:
		return "error"
	}
}

// translateTransition maps state machine facts onto domain error codes.
func translateTransition(err error) error {
	switch {
	case errors.Is(err, request.ErrFulfilled):
		return dErrors.Wrap(dErrors.CodeFulfilled, "request already fulfilled", err)
	case errors.Is(err, request.ErrAtCapacity):
		return dErrors.Wrap(dErrors.CodeAtCapacity, "every unit already has a donor", err)
	case errors.Is(err, request.ErrDuplicateAccept):
		return dErrors.Wrap(dErrors.CodeDuplicate, "donor already accepted this request", err)
	case errors.Is(err, request.ErrNotAccepted):
		return dErrors.Wrap(dErrors.CodeConflict, "donor has not accepted this request", err)
	case errors.Is(err, request.ErrInvalidState):
		return dErrors.Wrap(dErrors.CodeConflict, "request state does not allow this transition", err)
	default:
		return dErrors.Wrap(dErrors.CodeInternal, "transition failed", err)
	}
}

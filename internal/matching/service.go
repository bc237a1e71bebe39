// Package matching coordinates the request lifecycle across users,
// requests, eligibility, notifications, and the event stream. Stores and
// the state machine stay single-entity; every cross-entity rule lives
// here.
package matching

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"lifelink/internal/donor"
	"lifelink/internal/events"
	"lifelink/internal/history"
	"lifelink/internal/notification"
	"lifelink/internal/platform/metrics"
	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
	"lifelink/pkg/platform/sentinel"
)

const tracerName = "lifelink/matching"

// Service is the coordination layer for the matching engine.
type Service struct {
	users     user.Store
	requests  request.Store
	histories history.Store
	notifier  *notification.Emitter
	publisher *events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time

	mu    sync.Mutex
	locks map[domain.RequestID]*sync.Mutex
}

func NewService(
	users user.Store,
	requests request.Store,
	histories history.Store,
	notifier *notification.Emitter,
	publisher *events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:     users,
		requests:  requests,
		histories: histories,
		notifier:  notifier,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		locks:     make(map[domain.RequestID]*sync.Mutex),
	}
}

// lockFor serializes transitions on a single request so concurrent accepts
// cannot both pass the capacity check.
func (s *Service) lockFor(id domain.RequestID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// RegisterUserParams carries validated input for registration. Role and
// blood group arrive already parsed; the remaining fields are checked here.
type RegisterUserParams struct {
	Name       string
	Role       domain.Role
	Email      string
	Phone      string
	BloodGroup domain.BloodGroup
	Location   user.Location
}

func (p RegisterUserParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "phone is required")
	}
	return nil
}

// RegisterUser creates an account. Donors start available with the baseline
// trust score and the New Member badge.
func (s *Service) RegisterUser(ctx context.Context, params RegisterUserParams) (*user.User, error) {
	ctx, span := s.tracer.Start(ctx, "matching.RegisterUser")
	defer span.End()

	if err := params.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	u := user.NewUser(params.Name, params.Role, params.Email, params.Phone, params.BloodGroup, params.Location, now)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create user", err)
	}

	s.publisher.Emit(ctx, events.UserRegistered(u, now))
	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID.String(), "role", string(u.Role))
	return u, nil
}

// GetUser fetches an account by ID.
// Errors: CodeNotFound when no such user exists.
func (s *Service) GetUser(ctx context.Context, id domain.UserID) (*user.User, error) {
	ctx, span := s.tracer.Start(ctx, "matching.GetUser")
	defer span.End()
	return s.findUser(ctx, id)
}

// ToggleAvailability flips whether the donor appears in emergency fan-outs.
// Availability is the donor's own switch; eligibility is evaluated
// separately and cannot be toggled away.
//
// Errors: CodeNotFound, CodeRoleMismatch for non-donor accounts.
func (s *Service) ToggleAvailability(ctx context.Context, id domain.UserID) (*user.User, error) {
	ctx, span := s.tracer.Start(ctx, "matching.ToggleAvailability")
	defer span.End()

	u, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsDonor() {
		return nil, dErrors.New(dErrors.CodeRoleMismatch, "only donors have availability")
	}

	u.IsAvailable = !u.IsAvailable
	if err := s.users.Update(ctx, u); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update user", err)
	}

	s.publisher.Emit(ctx, events.AvailabilityChanged(u, s.now()))
	return u, nil
}

// GetEligibility evaluates the donor against the cooldown and lifetime cap
// at the current instant. Never persisted; the verdict goes stale with the
// clock.
//
// Errors: CodeNotFound, CodeRoleMismatch for non-donor accounts.
func (s *Service) GetEligibility(ctx context.Context, id domain.UserID) (donor.Eligibility, error) {
	ctx, span := s.tracer.Start(ctx, "matching.GetEligibility")
	defer span.End()

	u, err := s.findUser(ctx, id)
	if err != nil {
		return donor.Eligibility{}, err
	}
	if !u.IsDonor() {
		return donor.Eligibility{}, dErrors.New(dErrors.CodeRoleMismatch, "eligibility applies to donors only")
	}
	return donor.Evaluate(u, s.now()), nil
}

// GetHistory returns the donor's permanent record, newest first.
func (s *Service) GetHistory(ctx context.Context, donorID domain.UserID) ([]*history.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "matching.GetHistory")
	defer span.End()

	if _, err := s.findUser(ctx, donorID); err != nil {
		return nil, err
	}
	entries, err := s.histories.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list history", err)
	}
	return entries, nil
}

func (s *Service) findUser(ctx context.Context, id domain.UserID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "find user", err)
	}
	return u, nil
}

func (s *Service) findRequest(ctx context.Context, id domain.RequestID) (*request.Request, error) {
	req, err := s.requests.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "request not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "find request", err)
	}
	return req, nil
}

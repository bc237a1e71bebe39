// Package handler exposes the matching engine over HTTP.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lifelink/internal/donor"
	"lifelink/internal/history"
	"lifelink/internal/matching"
	"lifelink/internal/platform/middleware"
	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
)

// TokenIssuer mints access tokens for registered users. Nil disables the
// token endpoint (open demo mode).
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, expiresIn time.Duration) (string, error)
}

// Service defines the coordinator operations the HTTP layer needs.
type Service interface {
	RegisterUser(ctx context.Context, params matching.RegisterUserParams) (*user.User, error)
	GetUser(ctx context.Context, id domain.UserID) (*user.User, error)
	ToggleAvailability(ctx context.Context, id domain.UserID) (*user.User, error)
	GetEligibility(ctx context.Context, id domain.UserID) (donor.Eligibility, error)
	GetHistory(ctx context.Context, donorID domain.UserID) ([]*history.Entry, error)
	CreateRequest(ctx context.Context, params matching.CreateRequestParams) (*request.Request, error)
	GetRequest(ctx context.Context, id domain.RequestID) (*request.Request, error)
	ListRequests(ctx context.Context, status *domain.RequestStatus) ([]*request.Request, error)
	AcceptRequest(ctx context.Context, requestID domain.RequestID, donorID domain.UserID) (*request.Request, error)
	ConfirmDonation(ctx context.Context, requestID domain.RequestID, donorID domain.UserID) (*request.Request, error)
	ReportNoShow(ctx context.Context, requestID domain.RequestID, donorID domain.UserID) (*request.Request, error)
	ExpireRequest(ctx context.Context, requestID domain.RequestID) (*request.Request, error)
}

// Handler handles user and request endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	jwtValidator middleware.JWTValidator
	tokens       TokenIssuer
}

// New creates a new matching Handler.
func New(service Service, logger *slog.Logger, jwtValidator middleware.JWTValidator, tokens TokenIssuer) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		jwtValidator: jwtValidator,
		tokens:       tokens,
	}
}

// Register registers the matching routes with the chi router. Reads are
// public; mutations sit behind auth when a validator is configured.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(api chi.Router) {
		api.Use(middleware.Recovery(h.logger))
		api.Use(middleware.RequestID)
		api.Use(middleware.Logger(h.logger))
		api.Use(middleware.Timeout(30 * time.Second))
		api.Use(middleware.ContentTypeJSON)

		api.Post("/users", h.handleRegisterUser)
		api.Post("/auth/token", h.handleIssueToken)
		api.Get("/users/{userID}", h.handleGetUser)
		api.Get("/users/{userID}/eligibility", h.handleGetEligibility)
		api.Get("/users/{userID}/history", h.handleGetHistory)
		api.Get("/requests", h.handleListRequests)
		api.Get("/requests/{requestID}", h.handleGetRequest)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
			protected.Post("/users/{userID}/availability/toggle", h.handleToggleAvailability)
			protected.Post("/requests", h.handleCreateRequest)
			protected.Post("/requests/{requestID}/accept", h.handleAccept)
			protected.Post("/requests/{requestID}/confirm", h.handleConfirm)
			protected.Post("/requests/{requestID}/no-show", h.handleNoShow)
			protected.Post("/requests/{requestID}/expire", h.handleExpire)
		})
	})
}

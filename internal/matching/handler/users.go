package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lifelink/internal/history"
	"lifelink/internal/matching"
	"lifelink/internal/transport/http/shared"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
)

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	group, err := domain.ParseBloodGroup(req.BloodGroup)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	u, err := h.service.RegisterUser(ctx, matching.RegisterUserParams{
		Name:       req.Name,
		Role:       role,
		Email:      req.Email,
		Phone:      req.Phone,
		BloodGroup: group,
		Location:   req.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "user registration failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// handleIssueToken exchanges a registered user ID for a bearer token. The
// endpoint only exists when a signing key is configured.
func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.tokens == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "token issuance is disabled"))
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	id, err := domain.ParseUserID(req.UserID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if _, err := h.service.GetUser(ctx, id); err != nil {
		shared.WriteError(w, err)
		return
	}

	const ttl = 24 * time.Hour
	token, err := h.tokens.GenerateAccessToken(id.UUID(), ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "token generation failed", "error", err.Error())
		shared.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "could not issue token", err))
		return
	}
	shared.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, ExpiresIn: int64(ttl.Seconds())})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) handleGetEligibility(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	verdict, err := h.service.GetEligibility(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, verdict)
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	entries, err := h.service.GetHistory(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []*history.Entry{}
	}
	shared.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	u, err := h.service.ToggleAvailability(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "availability toggle failed", "user_id", id.String(), "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

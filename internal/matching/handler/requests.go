package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lifelink/internal/matching"
	"lifelink/internal/request"
	"lifelink/internal/transport/http/shared"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
)

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	requesterID, err := domain.ParseUserID(req.RequesterID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	group, err := domain.ParseBloodGroup(req.BloodGroup)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	urgency, err := domain.ParseUrgency(req.Urgency)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	created, err := h.service.CreateRequest(ctx, matching.CreateRequestParams{
		RequesterID:  requesterID,
		HospitalName: req.HospitalName,
		BloodGroup:   group,
		Units:        req.Units,
		Urgency:      urgency,
		IsPreBooking: req.IsPreBooking,
		RequiredDate: req.RequiredDate,
		Location:     req.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "request creation failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, toRequestResponse(created))
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	req, err := h.service.GetRequest(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	var status *domain.RequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseRequestStatus(raw)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		status = &parsed
	}

	reqs, err := h.service.ListRequests(r.Context(), status)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRequestResponses(reqs))
}

// donorTransition covers accept, confirm, and no-show: same input shape,
// different coordinator call.
func (h *Handler) donorTransition(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	call func(requestID domain.RequestID, donorID domain.UserID) (*request.Request, error),
) {
	ctx := r.Context()

	requestID, err := domain.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var body donorActionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	donorID, err := domain.ParseUserID(body.DonorID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	req, err := call(requestID, donorID)
	if err != nil {
		h.logger.WarnContext(ctx, "transition rejected",
			"action", action,
			"request_id", requestID.String(),
			"donor_id", donorID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	h.donorTransition(w, r, "accept", func(requestID domain.RequestID, donorID domain.UserID) (*request.Request, error) {
		return h.service.AcceptRequest(r.Context(), requestID, donorID)
	})
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	h.donorTransition(w, r, "confirm", func(requestID domain.RequestID, donorID domain.UserID) (*request.Request, error) {
		return h.service.ConfirmDonation(r.Context(), requestID, donorID)
	})
}

func (h *Handler) handleNoShow(w http.ResponseWriter, r *http.Request) {
	h.donorTransition(w, r, "no-show", func(requestID domain.RequestID, donorID domain.UserID) (*request.Request, error) {
		return h.service.ReportNoShow(r.Context(), requestID, donorID)
	})
}

func (h *Handler) handleExpire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, err := domain.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	req, err := h.service.ExpireRequest(ctx, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "expire rejected", "request_id", requestID.String(), "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRequestResponse(req))
}

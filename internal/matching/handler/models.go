package handler

import (
	"time"

	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
)

type registerUserRequest struct {
	Name       string        `json:"name"`
	Role       string        `json:"role"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	BloodGroup string        `json:"bloodGroup"`
	Location   user.Location `json:"location"`
}

type createRequestRequest struct {
	RequesterID  string        `json:"requesterId"`
	HospitalName string        `json:"hospitalName"`
	BloodGroup   string        `json:"bloodGroup"`
	Units        int           `json:"units"`
	Urgency      string        `json:"urgency"`
	IsPreBooking bool          `json:"isPreBooking"`
	RequiredDate time.Time     `json:"requiredDate"`
	Location     user.Location `json:"location"`
}

type donorActionRequest struct {
	DonorID string `json:"donorId"`
}

type tokenRequest struct {
	UserID string `json:"userId"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type userResponse struct {
	ID            domain.UserID `json:"id"`
	Name          string        `json:"name"`
	Role          string        `json:"role"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	BloodGroup    string        `json:"bloodGroup"`
	Location      user.Location `json:"location"`
	IsAvailable   bool          `json:"isAvailable"`
	LastDonation  *time.Time    `json:"lastDonation,omitempty"`
	DonationCount int           `json:"donationCount"`
	TrustScore    int           `json:"trustScore"`
	Badges        []string      `json:"badges"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Role:          string(u.Role),
		Email:         u.Email,
		Phone:         u.Phone,
		BloodGroup:    string(u.BloodGroup),
		Location:      u.Location,
		IsAvailable:   u.IsAvailable,
		LastDonation:  u.LastDonation,
		DonationCount: u.DonationCount,
		TrustScore:    u.TrustScore,
		Badges:        u.Badges,
		CreatedAt:     u.CreatedAt,
	}
}

type requestResponse struct {
	ID            domain.RequestID `json:"id"`
	RequesterID   domain.UserID    `json:"requesterId"`
	RequesterName string           `json:"requesterName"`
	HospitalName  string           `json:"hospitalName"`
	BloodGroup    string           `json:"bloodGroup"`
	Units         int              `json:"units"`
	Urgency       string           `json:"urgency"`
	IsPreBooking  bool             `json:"isPreBooking"`
	RequiredDate  *time.Time       `json:"requiredDate,omitempty"`
	Location      user.Location    `json:"location"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	AcceptedBy    []domain.UserID  `json:"acceptedBy"`
}

func toRequestResponse(req *request.Request) requestResponse {
	resp := requestResponse{
		ID:            req.ID,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		HospitalName:  req.HospitalName,
		BloodGroup:    string(req.BloodGroup),
		Units:         req.Units,
		Urgency:       string(req.Urgency),
		IsPreBooking:  req.IsPreBooking,
		Location:      req.Location,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
		AcceptedBy:    req.AcceptedBy,
	}
	if !req.RequiredDate.IsZero() {
		date := req.RequiredDate
		resp.RequiredDate = &date
	}
	if resp.AcceptedBy == nil {
		resp.AcceptedBy = []domain.UserID{}
	}
	return resp
}

func toRequestResponses(reqs []*request.Request) []requestResponse {
	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRequestResponse(req))
	}
	return out
}

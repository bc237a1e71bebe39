package events

import (
	"time"

	"lifelink/internal/request"
	"lifelink/internal/user"
	"lifelink/pkg/domain"
)

// Type classifies engine lifecycle events on the stream.
type Type string

const (
	TypeUserRegistered      Type = "user_registered"
	TypeAvailabilityChanged Type = "availability_changed"
	TypeRequestCreated      Type = "request_created"
	TypeRequestAccepted     Type = "request_accepted"
	TypeDonationConfirmed   Type = "donation_confirmed"
	TypeNoShowReported      Type = "no_show_reported"
	TypeRequestExpired      Type = "request_expired"
)

// Event is one entry on the engine event stream. Transport-agnostic so
// sinks can fan out; only the fields relevant to the event type are set.
type Event struct {
	ID         string               `json:"id"`
	Type       Type                 `json:"type"`
	Timestamp  time.Time            `json:"timestamp"`
	UserID     domain.UserID        `json:"userId"`
	RequestID  domain.RequestID     `json:"requestId"`
	BloodGroup domain.BloodGroup    `json:"bloodGroup,omitempty"`
	Status     domain.RequestStatus `json:"status,omitempty"`
	Urgency    domain.Urgency       `json:"urgency,omitempty"`
	TrustScore int                  `json:"trustScore,omitempty"`
}

// Key groups related events onto the same stream partition: request
// lifecycle events by request, user events by user.
func (e Event) Key() string {
	if !e.RequestID.IsNil() {
		return e.RequestID.String()
	}
	return e.UserID.String()
}

func UserRegistered(u *user.User, now time.Time) Event {
	return Event{
		Type:       TypeUserRegistered,
		Timestamp:  now,
		UserID:     u.ID,
		BloodGroup: u.BloodGroup,
		TrustScore: u.TrustScore,
	}
}

func AvailabilityChanged(u *user.User, now time.Time) Event {
	return Event{
		Type:      TypeAvailabilityChanged,
		Timestamp: now,
		UserID:    u.ID,
	}
}

func RequestCreated(req *request.Request, now time.Time) Event {
	return Event{
		Type:       TypeRequestCreated,
		Timestamp:  now,
		RequestID:  req.ID,
		UserID:     req.RequesterID,
		BloodGroup: req.BloodGroup,
		Status:     req.Status,
		Urgency:    req.Urgency,
	}
}

func RequestAccepted(req *request.Request, donorID domain.UserID, now time.Time) Event {
	return Event{
		Type:      TypeRequestAccepted,
		Timestamp: now,
		RequestID: req.ID,
		UserID:    donorID,
		Status:    req.Status,
	}
}

func DonationConfirmed(req *request.Request, d *user.User, now time.Time) Event {
	return Event{
		Type:       TypeDonationConfirmed,
		Timestamp:  now,
		RequestID:  req.ID,
		UserID:     d.ID,
		Status:     req.Status,
		TrustScore: d.TrustScore,
	}
}

func NoShowReported(req *request.Request, d *user.User, now time.Time) Event {
	return Event{
		Type:       TypeNoShowReported,
		Timestamp:  now,
		RequestID:  req.ID,
		UserID:     d.ID,
		Status:     req.Status,
		TrustScore: d.TrustScore,
	}
}

func RequestExpired(req *request.Request, now time.Time) Event {
	return Event{
		Type:      TypeRequestExpired,
		Timestamp: now,
		RequestID: req.ID,
		Status:    req.Status,
	}
}

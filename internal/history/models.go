package history

import (
	"time"

	"github.com/google/uuid"

	"lifelink/pkg/domain"
)

// Kind distinguishes completed donations from recorded no-shows.
type Kind string

const (
	KindDonation Kind = "DONATION"
	KindNoShow   Kind = "NO_SHOW"
)

// Entry is one row in a donor's permanent record. Entries are append-only;
// a no-show entry stays even after the donor re-accepts the same request.
type Entry struct {
	ID           uuid.UUID         `json:"id"`
	DonorID      domain.UserID     `json:"donorId"`
	RequestID    domain.RequestID  `json:"requestId"`
	Kind         Kind              `json:"kind"`
	HospitalName string            `json:"hospitalName"`
	BloodGroup   domain.BloodGroup `json:"bloodGroup"`
	OccurredAt   time.Time         `json:"occurredAt"`
}

func NewEntry(donorID domain.UserID, requestID domain.RequestID, kind Kind, hospitalName string, bloodGroup domain.BloodGroup, occurredAt time.Time) *Entry {
	return &Entry{
		ID:           uuid.New(),
		DonorID:      donorID,
		RequestID:    requestID,
		Kind:         kind,
		HospitalName: hospitalName,
		BloodGroup:   bloodGroup,
		OccurredAt:   occurredAt,
	}
}

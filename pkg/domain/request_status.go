package domain

import dErrors "lifelink/pkg/domain-errors"

// RequestStatus is the lifecycle state of a blood request.
//
// PENDING -> ACCEPTED -> FULFILLED, with ACCEPTED -> PENDING when every
// accepted donor withdraws. EXPIRED is terminal and driven externally.
// Status is derived exclusively through request transitions, never set
// directly by callers.
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusAccepted  RequestStatus = "ACCEPTED"
	StatusFulfilled RequestStatus = "FULFILLED"
	StatusExpired   RequestStatus = "EXPIRED"
)

var validStatuses = map[RequestStatus]bool{
	StatusPending:   true,
	StatusAccepted:  true,
	StatusFulfilled: true,
	StatusExpired:   true,
}

// ParseRequestStatus constructs a RequestStatus from external input, used
// when callers filter request listings.
func ParseRequestStatus(s string) (RequestStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := RequestStatus(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	return st, nil
}

func (s RequestStatus) IsValid() bool {
	return validStatuses[s]
}

// Terminal reports whether no further lifecycle transitions are allowed.
func (s RequestStatus) Terminal() bool {
	return s == StatusFulfilled || s == StatusExpired
}

func (s RequestStatus) String() string {
	return string(s)
}

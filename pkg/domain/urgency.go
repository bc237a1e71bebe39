package domain

import dErrors "lifelink/pkg/domain-errors"

// Urgency ranks how quickly a blood request must be served.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyNormal   Urgency = "NORMAL"
)

var validUrgencies = map[Urgency]bool{
	UrgencyCritical: true,
	UrgencyHigh:     true,
	UrgencyNormal:   true,
}

// ParseUrgency constructs an Urgency from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseUrgency(s string) (Urgency, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "urgency cannot be empty")
	}
	u := Urgency(s)
	if !u.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid urgency")
	}
	return u, nil
}

func (u Urgency) IsValid() bool {
	return validUrgencies[u]
}

func (u Urgency) String() string {
	return string(u)
}

// Package donor holds the medical-safety and reputation rules applied to
// donor accounts: the eligibility evaluator and the trust-score ledger.
package donor

import (
	"math"
	"time"

	"lifelink/internal/user"
)

const (
	// MaxLifetimeDonations is the hard health-safety cap. Once reached the
	// donor is permanently ineligible.
	MaxLifetimeDonations = 50

	// CooldownDays is the mandatory recovery interval after a confirmed
	// donation.
	CooldownDays = 90
)

// IneligibleReason says why a donor cannot currently respond.
type IneligibleReason string

const (
	ReasonNone     IneligibleReason = "NONE"
	ReasonMaxLimit IneligibleReason = "MAX_LIMIT"
	ReasonCooldown IneligibleReason = "COOLDOWN"
)

// Eligibility is the outcome of an evaluation. DaysRemaining is populated
// only for COOLDOWN; MAX_LIMIT is permanent.
type Eligibility struct {
	Eligible      bool             `json:"eligible"`
	Reason        IneligibleReason `json:"reason"`
	DaysRemaining int              `json:"daysRemaining,omitempty"`
}

// Evaluate computes whether the donor may respond to requests at the given
// instant. Pure and deterministic given now; callers must re-evaluate on
// every query rather than persist the result, or it goes stale against the
// clock.
func Evaluate(u *user.User, now time.Time) Eligibility {
	if u.DonationCount >= MaxLifetimeDonations {
		return Eligibility{Eligible: false, Reason: ReasonMaxLimit}
	}
	if u.LastDonation != nil {
		elapsedDays := now.Sub(*u.LastDonation).Hours() / 24
		if elapsedDays < CooldownDays {
			return Eligibility{
				Eligible:      false,
				Reason:        ReasonCooldown,
				DaysRemaining: int(math.Ceil(CooldownDays - elapsedDays)),
			}
		}
	}
	return Eligibility{Eligible: true, Reason: ReasonNone}
}

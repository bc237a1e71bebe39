package donor

import (
	"time"

	"lifelink/internal/user"
	dErrors "lifelink/pkg/domain-errors"
)

const (
	confirmedDonationPoints = 50
	noShowPenaltyPoints     = 20

	// verifiedHeroThreshold is exclusive: the badge is earned when the score
	// moves strictly above it.
	verifiedHeroThreshold = 500
)

// ApplyDonationConfirmed returns a copy of the donor credited for a
// confirmed donation: +50 trust, one more lifetime donation, cooldown clock
// restarted, availability switched off. The Verified Hero badge is appended
// once when the score crosses the threshold, never twice.
//
// Errors: CodeRoleMismatch when the account is not a donor.
func ApplyDonationConfirmed(u *user.User, now time.Time) (*user.User, error) {
	if !u.IsDonor() {
		return nil, dErrors.New(dErrors.CodeRoleMismatch, "cannot credit donation to non-donor account")
	}
	next := u.Clone()
	next.DonationCount++
	next.TrustScore += confirmedDonationPoints
	next.LastDonation = &now
	next.IsAvailable = false
	if next.TrustScore > verifiedHeroThreshold && !next.HasBadge(user.BadgeVerifiedHero) {
		next.Badges = append(next.Badges, user.BadgeVerifiedHero)
	}
	return next, nil
}

// ApplyNoShow returns a copy of the donor penalized for not showing up:
// -20 trust, floored at zero. Donation count, availability, and the
// cooldown clock are untouched.
//
// Errors: CodeRoleMismatch when the account is not a donor.
func ApplyNoShow(u *user.User) (*user.User, error) {
	if !u.IsDonor() {
		return nil, dErrors.New(dErrors.CodeRoleMismatch, "cannot penalize non-donor account")
	}
	next := u.Clone()
	next.TrustScore -= noShowPenaltyPoints
	if next.TrustScore < 0 {
		next.TrustScore = 0
	}
	return next, nil
}

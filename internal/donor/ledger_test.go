package donor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifelink/internal/user"
	"lifelink/pkg/domain"
	dErrors "lifelink/pkg/domain-errors"
)

func TestApplyDonationConfirmed(t *testing.T) {
	t.Run("credits score, count, cooldown, availability", func(t *testing.T) {
		d := newDonor(4, nil)
		d.TrustScore = 200

		next, err := ApplyDonationConfirmed(d, testNow)
		require.NoError(t, err)

		assert.Equal(t, 250, next.TrustScore)
		assert.Equal(t, 5, next.DonationCount)
		require.NotNil(t, next.LastDonation)
		assert.Equal(t, testNow, *next.LastDonation)
		assert.False(t, next.IsAvailable)

		// Input untouched.
		assert.Equal(t, 200, d.TrustScore)
		assert.Equal(t, 4, d.DonationCount)
	})

	t.Run("awards Verified Hero once past 500", func(t *testing.T) {
		d := newDonor(8, nil)
		d.TrustScore = 460

		next, err := ApplyDonationConfirmed(d, testNow)
		require.NoError(t, err)
		assert.Equal(t, 510, next.TrustScore)
		assert.Equal(t, []string{user.BadgeNewMember, user.BadgeVerifiedHero}, next.Badges)

		// A later confirmation must not duplicate the badge.
		again, err := ApplyDonationConfirmed(next, testNow.Add(91*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []string{user.BadgeNewMember, user.BadgeVerifiedHero}, again.Badges)
	})

	t.Run("no badge at exactly 500", func(t *testing.T) {
		d := newDonor(8, nil)
		d.TrustScore = 450

		next, err := ApplyDonationConfirmed(d, testNow)
		require.NoError(t, err)
		assert.Equal(t, 500, next.TrustScore)
		assert.False(t, next.HasBadge(user.BadgeVerifiedHero))
	})

	t.Run("49th to 50th donation hits the lifetime cap", func(t *testing.T) {
		d := newDonor(49, nil)

		next, err := ApplyDonationConfirmed(d, testNow)
		require.NoError(t, err)

		got := Evaluate(next, testNow)
		assert.False(t, got.Eligible)
		assert.Equal(t, ReasonMaxLimit, got.Reason)
	})

	t.Run("rejects non-donor", func(t *testing.T) {
		hospital := user.NewUser("Apollo", domain.RoleHospital, "admin@apollo.com", "", "", user.Location{}, testNow)
		_, err := ApplyDonationConfirmed(hospital, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeRoleMismatch))
	})
}

func TestApplyNoShow(t *testing.T) {
	t.Run("deducts twenty points", func(t *testing.T) {
		d := newDonor(4, daysAgo(10))
		d.TrustScore = 100
		d.IsAvailable = true

		next, err := ApplyNoShow(d)
		require.NoError(t, err)
		assert.Equal(t, 80, next.TrustScore)

		// Everything else untouched.
		assert.Equal(t, 4, next.DonationCount)
		assert.True(t, next.IsAvailable)
		assert.Equal(t, d.LastDonation, next.LastDonation)
	})

	t.Run("floors at zero", func(t *testing.T) {
		d := newDonor(0, nil)
		d.TrustScore = 10

		next, err := ApplyNoShow(d)
		require.NoError(t, err)
		assert.Equal(t, 0, next.TrustScore)

		again, err := ApplyNoShow(next)
		require.NoError(t, err)
		assert.Equal(t, 0, again.TrustScore)
	})

	t.Run("rejects non-donor", func(t *testing.T) {
		patient := user.NewUser("Suresh", domain.RolePatient, "suresh@example.com", "", "", user.Location{}, testNow)
		_, err := ApplyNoShow(patient)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeRoleMismatch))
	})
}

package donor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lifelink/internal/user"
	"lifelink/pkg/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newDonor(count int, last *time.Time) *user.User {
	u := user.NewUser("Ravi", domain.RoleDonor, "ravi@example.com", "+91 9876543210", domain.BloodGroupOPos, user.Location{}, testNow.Add(-365*24*time.Hour))
	u.DonationCount = count
	u.LastDonation = last
	return u
}

func daysAgo(d float64) *time.Time {
	t := testNow.Add(-time.Duration(d * 24 * float64(time.Hour)))
	return &t
}

func TestEvaluate_LifetimeCap(t *testing.T) {
	t.Run("at the cap", func(t *testing.T) {
		got := Evaluate(newDonor(MaxLifetimeDonations, nil), testNow)
		assert.False(t, got.Eligible)
		assert.Equal(t, ReasonMaxLimit, got.Reason)
		assert.Zero(t, got.DaysRemaining)
	})

	t.Run("cap wins over cooldown regardless of last donation", func(t *testing.T) {
		got := Evaluate(newDonor(60, daysAgo(5)), testNow)
		assert.Equal(t, ReasonMaxLimit, got.Reason)
	})
}

func TestEvaluate_Cooldown(t *testing.T) {
	t.Run("inside the window", func(t *testing.T) {
		got := Evaluate(newDonor(3, daysAgo(30)), testNow)
		assert.False(t, got.Eligible)
		assert.Equal(t, ReasonCooldown, got.Reason)
		assert.Equal(t, 60, got.DaysRemaining)
	})

	t.Run("days remaining rounds up", func(t *testing.T) {
		got := Evaluate(newDonor(3, daysAgo(89.5)), testNow)
		assert.Equal(t, ReasonCooldown, got.Reason)
		assert.Equal(t, 1, got.DaysRemaining)
	})

	t.Run("window just elapsed", func(t *testing.T) {
		got := Evaluate(newDonor(3, daysAgo(90)), testNow)
		assert.True(t, got.Eligible)
		assert.Equal(t, ReasonNone, got.Reason)
	})

	t.Run("never donated", func(t *testing.T) {
		got := Evaluate(newDonor(0, nil), testNow)
		assert.True(t, got.Eligible)
	})
}

func TestEvaluate_IsPure(t *testing.T) {
	d := newDonor(3, daysAgo(30))
	before := *d.Clone()
	_ = Evaluate(d, testNow)
	assert.Equal(t, &before, d)

	// Same inputs, same answer.
	assert.Equal(t, Evaluate(d, testNow), Evaluate(d, testNow))
}

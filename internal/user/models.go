package user

import (
	"time"

	"lifelink/pkg/domain"
)

// Badges earned through donation milestones. The set on a user is
// insertion-ordered and never contains duplicates.
const (
	BadgeNewMember    = "New Member"
	BadgeVerifiedHero = "Verified Hero"
)

// Location is a free-text address with coordinates. The engine never routes
// on it; it is carried for the caller to render.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// User is a registered account. Donor-only fields (availability, cooldown,
// trust score) are meaningful only when Role is DONOR.
//
// Invariants: DonationCount is monotonically non-decreasing; TrustScore
// never goes below zero; Badges holds no duplicates.
type User struct {
	ID            domain.UserID
	Name          string
	Role          domain.Role
	Email         string
	Phone         string
	BloodGroup    domain.BloodGroup
	Location      Location
	IsAvailable   bool
	LastDonation  *time.Time
	DonationCount int
	TrustScore    int
	Badges        []string
	CreatedAt     time.Time
}

// IsDonor reports whether donor rules (eligibility, ledger) apply.
func (u *User) IsDonor() bool {
	return u.Role == domain.RoleDonor
}

// HasBadge reports whether the badge was already earned.
func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without aliasing store
// state.
func (u *User) Clone() *User {
	cp := *u
	if u.LastDonation != nil {
		last := *u.LastDonation
		cp.LastDonation = &last
	}
	cp.Badges = append([]string(nil), u.Badges...)
	return &cp
}

// NewUser builds a freshly registered account. Donors start available with a
// baseline trust score and the New Member badge, matching the onboarding
// flow.
func NewUser(name string, role domain.Role, email, phone string, group domain.BloodGroup, loc Location, now time.Time) *User {
	u := &User{
		ID:         domain.NewUserID(),
		Name:       name,
		Role:       role,
		Email:      email,
		Phone:      phone,
		BloodGroup: group,
		Location:   loc,
		TrustScore: 100,
		Badges:     []string{BadgeNewMember},
		CreatedAt:  now,
	}
	if role == domain.RoleDonor {
		u.IsAvailable = true
	}
	return u
}

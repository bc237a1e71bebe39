package domain

import dErrors "lifelink/pkg/domain-errors"

// BloodGroup is a donor's or request's ABO/Rh group.
// Invariant: the value must be one of the eight supported groups.
//
// Usage: construct via ParseBloodGroup at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// BloodGroups lists every supported group in display order.
var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

// validBloodGroups is the single source of truth for valid groups.
var validBloodGroups = map[BloodGroup]bool{
	BloodGroupAPos: true, BloodGroupANeg: true,
	BloodGroupBPos: true, BloodGroupBNeg: true,
	BloodGroupABPos: true, BloodGroupABNeg: true,
	BloodGroupOPos: true, BloodGroupONeg: true,
}

// ParseBloodGroup constructs a BloodGroup from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseBloodGroup(s string) (BloodGroup, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "blood group cannot be empty")
	}
	g := BloodGroup(s)
	if !g.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid blood group")
	}
	return g, nil
}

// IsValid checks if the group is one of the supported enum values.
func (g BloodGroup) IsValid() bool {
	return validBloodGroups[g]
}

// String returns the string representation of the group.
func (g BloodGroup) String() string {
	return string(g)
}

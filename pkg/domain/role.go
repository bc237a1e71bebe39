package domain

import dErrors "lifelink/pkg/domain-errors"

// Role identifies what a user account is allowed to do. Only donors carry
// availability, cooldown, and trust-score state.
type Role string

const (
	RoleDonor    Role = "DONOR"
	RoleHospital Role = "HOSPITAL"
	RolePatient  Role = "PATIENT"
	RoleAdmin    Role = "ADMIN"
)

var validRoles = map[Role]bool{
	RoleDonor:    true,
	RoleHospital: true,
	RolePatient:  true,
	RoleAdmin:    true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}

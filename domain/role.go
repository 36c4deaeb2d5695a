package domain

import "fmt"

// Role classifies an account. The set is closed: a role is fixed at
// registration and never reassigned.
type Role string

const (
	RoleStudent           Role = "student"
	RoleIndependentExpert Role = "independentExpert"
	RoleCertifier         Role = "certifier"
	RoleJobProvider       Role = "jobProvider"
)

// Roles lists every known role in presentation order.
func Roles() []Role {
	return []Role{RoleStudent, RoleIndependentExpert, RoleCertifier, RoleJobProvider}
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleIndependentExpert, RoleCertifier, RoleJobProvider:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts the wire representation into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", WrapError(ErrCodeInvalid, "unknown role", fmt.Errorf("role %q", s))
	}
	return r, nil
}

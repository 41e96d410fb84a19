package enums

import (
	"fmt"
	"strings"
)

// Role identifies which counter screen the caller is operating.
type Role string

const (
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

var validRoles = []Role{
	RoleCashier,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the role is recognized.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts a raw string into a Role.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

package enums

import "fmt"

// UserRole identifies what a registered account is allowed to do.
type UserRole string

const (
	UserRoleUser         UserRole = "USER"
	UserRoleAdmin        UserRole = "ADMIN"
	UserRolePickupPerson UserRole = "PICKUP_PERSON"
)

var validUserRoles = []UserRole{
	UserRoleUser,
	UserRoleAdmin,
	UserRolePickupPerson,
}

func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the role is known.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

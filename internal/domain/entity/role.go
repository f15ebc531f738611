package entity

import "fmt"

// Role is the single authorization attribute of a user.
type Role int

const (
	RoleStandard Role = iota
	RoleAdministrator
)

// storage values of the users.role column
const (
	roleStandardValue      = "user"
	roleAdministratorValue = "admin"
)

// ParseRole converts a stored or requested role name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleStandardValue, "standard":
		return RoleStandard, nil
	case roleAdministratorValue, "administrator":
		return RoleAdministrator, nil
	}
	return RoleStandard, fmt.Errorf("unknown role %q", s)
}

// String returns the storage value of the role.
func (r Role) String() string {
	if r == RoleAdministrator {
		return roleAdministratorValue
	}
	return roleStandardValue
}

func (r Role) IsAdministrator() bool { return r == RoleAdministrator }

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

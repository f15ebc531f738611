// Package policy holds the rules protecting administrator accounts from the
// user-management endpoints. Callers must pass the target as currently stored,
// never a client-supplied role.
package policy

import (
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

var (
	ErrDeleteAdministrator     = apperr.Forbidden("cannot delete administrator")
	ErrDeactivateAdministrator = apperr.Forbidden("cannot deactivate administrator")
	ErrDemoteAdministrator     = apperr.Forbidden("cannot demote administrator")
)

// CanDelete rejects deletion of administrators.
func CanDelete(target *entity.User) error {
	if target.Role.IsAdministrator() {
		return ErrDeleteAdministrator
	}
	return nil
}

// StatusChange is a requested change of a user's active flag and/or role.
type StatusChange struct {
	Active *bool
	Role   *entity.Role
}

// ApplyStatusChange checks change against the stored target and returns the
// resulting active flag and role.
func ApplyStatusChange(target *entity.User, change StatusChange) (bool, entity.Role, error) {
	active, role := target.IsActive, target.Role
	if change.Active != nil {
		if !*change.Active && target.Role.IsAdministrator() {
			return active, role, ErrDeactivateAdministrator
		}
		active = *change.Active
	}
	if change.Role != nil {
		if target.Role.IsAdministrator() && !change.Role.IsAdministrator() {
			return active, role, ErrDemoteAdministrator
		}
		role = *change.Role
	}
	return active, role, nil
}

package repository

import (
	"context"
	"time"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

// UserRepository is the credential store.
// Lookups that miss return an apperr NotFound; duplicate emails return apperr Conflict.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetActiveByID only returns users whose active flag is set.
	GetActiveByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, u *entity.User) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	// UpdateStatus writes active flag and role in a single statement.
	UpdateStatus(ctx context.Context, id string, active bool, role entity.Role) error
	Delete(ctx context.Context, id string) error
	ListWithTotals(ctx context.Context) ([]entity.UserWithTotals, error)
}

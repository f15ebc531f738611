package repository

import (
	"context"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

// GoalRepository scopes every mutation to the owning user.
type GoalRepository interface {
	Create(ctx context.Context, g *entity.Goal) error
	// ListByUser returns the user's goals ordered by target date.
	ListByUser(ctx context.Context, userID string) ([]entity.Goal, error)
	Update(ctx context.Context, userID, goalID string, patch entity.GoalPatch) (*entity.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}

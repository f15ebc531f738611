package repository

import (
	"context"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

type WorkoutRepository interface {
	Create(ctx context.Context, w *entity.Workout) error
	// ListByUser returns the user's workouts, most recent first.
	ListByUser(ctx context.Context, userID string) ([]entity.Workout, error)
}

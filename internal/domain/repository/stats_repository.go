package repository

import (
	"context"
)

// StatsRepository runs platform-wide aggregate queries directly in the database.
type StatsRepository interface {
	UserCounts(ctx context.Context) (total, active int64, err error)
	WorkoutTotals(ctx context.Context) (workouts, calories int64, err error)
}

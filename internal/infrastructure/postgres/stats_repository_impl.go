package postgres

import (
	"context"

	"github.com/oksasatya/fittrack-api/internal/domain/repository"
)

type StatsRepository struct {
	db DB
}

func NewStatsRepository(db DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) UserCounts(ctx context.Context) (int64, int64, error) {
	var total, active int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users
	`).Scan(&total, &active)
	if err != nil {
		return 0, 0, translate(err, "count users", "users")
	}
	return total, active, nil
}

func (r *StatsRepository) WorkoutTotals(ctx context.Context) (int64, int64, error) {
	var workouts, calories int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(calories_burned), 0)::bigint FROM workouts
	`).Scan(&workouts, &calories)
	if err != nil {
		return 0, 0, translate(err, "sum workouts", "workouts")
	}
	return workouts, calories, nil
}

var _ repository.StatsRepository = (*StatsRepository)(nil)

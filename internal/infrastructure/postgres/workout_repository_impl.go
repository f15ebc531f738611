package postgres

import (
	"context"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
)

type WorkoutRepository struct {
	db DB
}

func NewWorkoutRepository(db DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *entity.Workout) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO workouts (user_id, name, workout_type, duration_minutes, calories_burned,
			workout_date, intensity_level, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, created_at
	`, w.UserID, w.Name, string(w.Type), w.DurationMinutes, w.CaloriesBurned, w.Date, w.IntensityLevel, w.Notes)
	return translate(row.Scan(&w.ID, &w.CreatedAt), "create workout", "workout")
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID string) ([]entity.Workout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, user_id::text, name, workout_type, duration_minutes, COALESCE(calories_burned, 0),
			workout_date, intensity_level, notes, created_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY workout_date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, translate(err, "list workouts", "workout")
	}
	defer rows.Close()

	out := make([]entity.Workout, 0)
	for rows.Next() {
		var (
			w   entity.Workout
			typ string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &typ, &w.DurationMinutes, &w.CaloriesBurned,
			&w.Date, &w.IntensityLevel, &w.Notes, &w.CreatedAt); err != nil {
			return nil, translate(err, "scan workout", "workout")
		}
		w.Type = entity.WorkoutType(typ)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list workouts", "workout")
	}
	return out, nil
}

var _ repository.WorkoutRepository = (*WorkoutRepository)(nil)

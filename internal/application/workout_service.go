package application

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
)

type WorkoutService struct {
	Workouts repository.WorkoutRepository
	Now      func() time.Time
}

func NewWorkoutService(workouts repository.WorkoutRepository) *WorkoutService {
	return &WorkoutService{Workouts: workouts, Now: utcNow}
}

type CreateWorkoutInput struct {
	Name            string
	Type            entity.WorkoutType
	DurationMinutes int
	CaloriesBurned  int
	Date            *time.Time // defaults to today
	IntensityLevel  *int
	Notes           string
}

func (s *WorkoutService) List(ctx context.Context, userID string) ([]entity.Workout, error) {
	return s.Workouts.ListByUser(ctx, userID)
}

func (s *WorkoutService) Create(ctx context.Context, userID string, in CreateWorkoutInput) (*entity.Workout, error) {
	w := &entity.Workout{
		UserID:          userID,
		Name:            strings.TrimSpace(in.Name),
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		CaloriesBurned:  in.CaloriesBurned,
		IntensityLevel:  in.IntensityLevel,
		Notes:           in.Notes,
	}
	if in.Date != nil {
		w.Date = *in.Date
	} else {
		y, m, d := s.Now().Date()
		w.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if err := s.Workouts.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/internal/domain/stats"
)

const (
	recentWorkoutsLimit = 5
	activeGoalsLimit    = 5
)

type StatsService struct {
	Users    repository.UserRepository
	Workouts repository.WorkoutRepository
	Goals    repository.GoalRepository
	Now      func() time.Time
}

func NewStatsService(users repository.UserRepository, workouts repository.WorkoutRepository, goals repository.GoalRepository) *StatsService {
	return &StatsService{Users: users, Workouts: workouts, Goals: goals, Now: utcNow}
}

type Dashboard struct {
	User           *entity.User
	Stats          stats.DashboardStats
	RecentWorkouts []entity.Workout
	ActiveGoals    []GoalWithProgress
}

// Dashboard loads the user, their workouts and goals concurrently and derives the summary.
func (s *StatsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var (
		user     *entity.User
		workouts []entity.Workout
		goals    []entity.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.Users.GetByID(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		workouts, err = s.Workouts.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.Goals.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		User:           user,
		Stats:          stats.Dashboard(workouts, goals, s.Now()),
		RecentWorkouts: workouts[:min(len(workouts), recentWorkoutsLimit)],
		ActiveGoals:    make([]GoalWithProgress, 0, activeGoalsLimit),
	}
	for _, goal := range goals {
		if len(d.ActiveGoals) == activeGoalsLimit {
			break
		}
		if goal.Status == entity.GoalInProgress {
			d.ActiveGoals = append(d.ActiveGoals, withProgress(goal))
		}
	}
	return d, nil
}

type UserStats struct {
	Weekly  []stats.DayBucket
	Monthly []stats.MonthBucket
	ByType  []stats.TypeBucket
}

func (s *StatsService) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	workouts, err := s.Workouts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	return &UserStats{
		Weekly:  stats.Weekly(workouts, now),
		Monthly: stats.Monthly(workouts, now),
		ByType:  stats.TypeDistribution(workouts),
	}, nil
}

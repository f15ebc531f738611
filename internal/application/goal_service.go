package application

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/internal/domain/stats"
)

// GoalWithProgress pairs a goal with its completion percentage.
type GoalWithProgress struct {
	entity.Goal
	Progress float64
}

func withProgress(g entity.Goal) GoalWithProgress {
	return GoalWithProgress{Goal: g, Progress: stats.Progress(g.CurrentValue, g.TargetValue)}
}

type GoalService struct {
	Goals repository.GoalRepository
	Now   func() time.Time
}

func NewGoalService(goals repository.GoalRepository) *GoalService {
	return &GoalService{Goals: goals, Now: utcNow}
}

type CreateGoalInput struct {
	Title        string
	Type         string
	Description  string
	TargetValue  float64
	TargetUnit   string
	CurrentValue float64
	Status       entity.GoalStatus // defaults to in_progress
	StartDate    *time.Time        // defaults to today
	TargetDate   *time.Time
}

func (s *GoalService) List(ctx context.Context, userID string) ([]GoalWithProgress, error) {
	goals, err := s.Goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, withProgress(g))
	}
	return out, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in CreateGoalInput) (*GoalWithProgress, error) {
	g := entity.Goal{
		UserID:       userID,
		Title:        strings.TrimSpace(in.Title),
		Type:         in.Type,
		Description:  in.Description,
		TargetValue:  in.TargetValue,
		TargetUnit:   in.TargetUnit,
		CurrentValue: in.CurrentValue,
		Status:       in.Status,
		TargetDate:   in.TargetDate,
	}
	if g.Status == "" {
		g.Status = entity.GoalInProgress
	}
	if in.StartDate != nil {
		g.StartDate = *in.StartDate
	} else {
		y, m, d := s.Now().Date()
		g.StartDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if err := s.Goals.Create(ctx, &g); err != nil {
		return nil, err
	}
	out := withProgress(g)
	return &out, nil
}

// Update changes a goal owned by userID; goals of other users read as not found.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, patch entity.GoalPatch) (*GoalWithProgress, error) {
	g, err := s.Goals.Update(ctx, userID, goalID, patch)
	if err != nil {
		return nil, err
	}
	out := withProgress(*g)
	return &out, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	return s.Goals.Delete(ctx, userID, goalID)
}

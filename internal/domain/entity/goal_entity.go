package entity

import "time"

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalCancelled  GoalStatus = "cancelled"
)

type Goal struct {
	ID           string
	UserID       string
	Title        string
	Type         string
	Description  string
	TargetValue  float64
	TargetUnit   string
	CurrentValue float64
	Status       GoalStatus
	StartDate    time.Time
	TargetDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GoalPatch carries a partial goal update; nil fields are left unchanged.
type GoalPatch struct {
	Title        *string
	Description  *string
	TargetValue  *float64
	TargetUnit   *string
	CurrentValue *float64
	Status       *GoalStatus
	TargetDate   *time.Time
}

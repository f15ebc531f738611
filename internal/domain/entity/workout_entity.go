package entity

import "time"

type WorkoutType string

const (
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutStrength    WorkoutType = "strength"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutSports      WorkoutType = "sports"
	WorkoutOther       WorkoutType = "other"
)

// Workout belongs to exactly one user and is immutable once logged.
type Workout struct {
	ID              string
	UserID          string
	Name            string
	Type            WorkoutType
	DurationMinutes int
	CaloriesBurned  int
	Date            time.Time
	IntensityLevel  *int
	Notes           string
	CreatedAt       time.Time
}

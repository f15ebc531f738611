package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

// Wednesday
var now = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		want            float64
	}{
		{"half", 5, 10, 50},
		{"clamped", 30, 10, 100},
		{"zero target", 5, 0, 0},
		{"negative target", 5, -3, 0},
		{"negative current", -5, 10, 0},
		{"nan current", math.NaN(), 10, 0},
		{"nan target", 3, math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Progress(tt.current, tt.target), 1e-9)
		})
	}
}

func TestProgress_MonotonicInCurrent(t *testing.T) {
	for _, target := range []float64{0.5, 1, 7, 100, 1000} {
		prev := Progress(0, target)
		for c := 0.0; c <= target*2; c += target / 17 {
			p := Progress(c, target)
			require.GreaterOrEqual(t, p, prev, "target=%v current=%v", target, c)
			require.LessOrEqual(t, p, 100.0)
			prev = p
		}
	}
}

func TestInTrailingWeek(t *testing.T) {
	assert.True(t, InTrailingWeek(day(0), now))
	assert.True(t, InTrailingWeek(day(-6), now))
	assert.False(t, InTrailingWeek(day(-7), now))
	assert.False(t, InTrailingWeek(day(1), now))
}

func TestDashboard(t *testing.T) {
	workouts := []entity.Workout{
		{Type: entity.WorkoutCardio, DurationMinutes: 45, CaloriesBurned: 300, Date: day(0)},
		{Type: entity.WorkoutStrength, DurationMinutes: 30, CaloriesBurned: 0, Date: day(-3)},
		{Type: entity.WorkoutCardio, DurationMinutes: 60, CaloriesBurned: 500, Date: day(-20)},
		{Type: entity.WorkoutOther, DurationMinutes: 10, CaloriesBurned: 50, Date: day(-40)},
	}
	goals := []entity.Goal{
		{Status: entity.GoalCompleted},
		{Status: entity.GoalInProgress},
		{Status: entity.GoalCancelled},
	}

	got := Dashboard(workouts, goals, now)
	assert.Equal(t, DashboardStats{
		TotalWorkouts:     4,
		TotalMinutes:      145,
		TotalCalories:     850,
		WorkoutsThisWeek:  2,
		WorkoutsThisMonth: 2,
		TotalGoals:        3,
		AchievedGoals:     1,
	}, got)
}

func TestDashboard_Empty(t *testing.T) {
	assert.Equal(t, DashboardStats{}, Dashboard(nil, nil, now))
}

func TestDashboard_DoesNotMutateInput(t *testing.T) {
	workouts := []entity.Workout{{DurationMinutes: 45, CaloriesBurned: 300, Date: day(0)}}
	before := workouts[0]
	_ = Dashboard(workouts, nil, now)
	_ = Weekly(workouts, now)
	_ = Monthly(workouts, now)
	_ = TypeDistribution(workouts)
	assert.Equal(t, before, workouts[0])
}

func TestWeekly(t *testing.T) {
	workouts := []entity.Workout{
		{DurationMinutes: 45, CaloriesBurned: 300, Date: day(0)},  // Wednesday
		{DurationMinutes: 15, CaloriesBurned: 100, Date: day(0)},  // Wednesday
		{DurationMinutes: 30, CaloriesBurned: 200, Date: day(-2)}, // Monday
		{DurationMinutes: 99, CaloriesBurned: 999, Date: day(-7)}, // outside window
	}
	got := Weekly(workouts, now)
	require.Len(t, got, 7)
	assert.Equal(t, DayBucket{Day: "Monday", Workouts: 1, Minutes: 30, Calories: 200}, got[0])
	assert.Equal(t, DayBucket{Day: "Wednesday", Workouts: 2, Minutes: 60, Calories: 400}, got[2])
	assert.Equal(t, "Sunday", got[6].Day)
	assert.Zero(t, got[6].Workouts)
}

func TestMonthly(t *testing.T) {
	workouts := []entity.Workout{
		{DurationMinutes: 45, CaloriesBurned: 300, Date: day(0)},
		{DurationMinutes: 20, CaloriesBurned: 100, Date: time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)},
		{DurationMinutes: 20, CaloriesBurned: 100, Date: time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)},
	}
	got := Monthly(workouts, now)
	require.Len(t, got, MonthsInSummary)
	assert.Equal(t, "2025-11", got[0].Month)
	assert.Equal(t, 1, got[0].Workouts)
	assert.Equal(t, "2026-10", got[len(got)-1].Month)
	assert.Equal(t, 45, got[len(got)-1].Minutes)

	total := 0
	for _, b := range got {
		total += b.Workouts
	}
	assert.Equal(t, 2, total)
}

func TestTypeDistribution(t *testing.T) {
	workouts := []entity.Workout{
		{Type: entity.WorkoutStrength, DurationMinutes: 30},
		{Type: entity.WorkoutCardio, DurationMinutes: 20},
		{Type: entity.WorkoutCardio, DurationMinutes: 25},
		{Type: entity.WorkoutFlexibility, DurationMinutes: 15},
	}
	got := TypeDistribution(workouts)
	assert.Equal(t, []TypeBucket{
		{Type: entity.WorkoutCardio, Workouts: 2, Minutes: 45},
		{Type: entity.WorkoutFlexibility, Workouts: 1, Minutes: 15},
		{Type: entity.WorkoutStrength, Workouts: 1, Minutes: 30},
	}, got)
	assert.Empty(t, TypeDistribution(nil))
}

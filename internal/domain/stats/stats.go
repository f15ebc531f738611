// Package stats computes derived figures from workout, goal and user records.
// Every function is read-only over its inputs and recomputes from scratch on each call.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

// TrailingWindowDays is the length of the "this week" window, today included.
const TrailingWindowDays = 7

// PlatformTotals is the admin overview.
type PlatformTotals struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	TotalWorkouts int64 `json:"totalWorkouts"`
	TotalCalories int64 `json:"totalCalories"`
}

// DashboardStats is the per-user summary shown on the dashboard.
type DashboardStats struct {
	TotalWorkouts     int `json:"totalWorkouts"`
	TotalMinutes      int `json:"totalMinutes"`
	TotalCalories     int `json:"totalCalories"`
	WorkoutsThisWeek  int `json:"workoutsThisWeek"`
	WorkoutsThisMonth int `json:"workoutsThisMonth"`
	TotalGoals        int `json:"totalGoals"`
	AchievedGoals     int `json:"achievedGoals"`
}

type DayBucket struct {
	Day      string `json:"day"`
	Workouts int    `json:"workouts"`
	Minutes  int    `json:"minutes"`
	Calories int    `json:"calories"`
}

type MonthBucket struct {
	Month    string `json:"month"`
	Workouts int    `json:"workouts"`
	Minutes  int    `json:"minutes"`
	Calories int    `json:"calories"`
}

type TypeBucket struct {
	Type     entity.WorkoutType `json:"type"`
	Workouts int                `json:"workouts"`
	Minutes  int                `json:"minutes"`
}

// Progress returns the completion percentage of a goal, clamped to [0, 100].
// A non-positive target yields 0.
func Progress(current, target float64) float64 {
	if !(target > 0) || math.IsInf(target, 0) || math.IsNaN(current) {
		return 0
	}
	p := current / target * 100
	switch {
	case p > 100:
		return 100
	case p < 0:
		return 0
	}
	return p
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// InTrailingWeek reports whether day falls within the last TrailingWindowDays days ending today.
func InTrailingWeek(day, now time.Time) bool {
	today := startOfDay(now)
	d := startOfDay(day.In(now.Location()))
	from := today.AddDate(0, 0, -(TrailingWindowDays - 1))
	return !d.Before(from) && !d.After(today)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Dashboard rolls a user's workouts and goals into the dashboard figures.
func Dashboard(workouts []entity.Workout, goals []entity.Goal, now time.Time) DashboardStats {
	var s DashboardStats
	y, m, _ := now.Date()
	for _, w := range workouts {
		s.TotalWorkouts++
		s.TotalMinutes += nonNegative(w.DurationMinutes)
		s.TotalCalories += nonNegative(w.CaloriesBurned)
		if InTrailingWeek(w.Date, now) {
			s.WorkoutsThisWeek++
		}
		wy, wm, _ := w.Date.In(now.Location()).Date()
		if wy == y && wm == m {
			s.WorkoutsThisMonth++
		}
	}
	for _, g := range goals {
		s.TotalGoals++
		if g.Status == entity.GoalCompleted {
			s.AchievedGoals++
		}
	}
	return s
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Weekly groups the trailing week's workouts by day of week, Monday first.
func Weekly(workouts []entity.Workout, now time.Time) []DayBucket {
	idx := make(map[time.Weekday]int, len(weekdays))
	out := make([]DayBucket, len(weekdays))
	for i, wd := range weekdays {
		idx[wd] = i
		out[i] = DayBucket{Day: wd.String()}
	}
	for _, w := range workouts {
		if !InTrailingWeek(w.Date, now) {
			continue
		}
		b := &out[idx[w.Date.In(now.Location()).Weekday()]]
		b.Workouts++
		b.Minutes += nonNegative(w.DurationMinutes)
		b.Calories += nonNegative(w.CaloriesBurned)
	}
	return out
}

// MonthsInSummary is the number of calendar months returned by Monthly.
const MonthsInSummary = 12

// Monthly groups workouts of the last MonthsInSummary calendar months, oldest first.
func Monthly(workouts []entity.Workout, now time.Time) []MonthBucket {
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(MonthsInSummary - 1), 0)
	out := make([]MonthBucket, MonthsInSummary)
	idx := make(map[string]int, MonthsInSummary)
	for i := range out {
		key := first.AddDate(0, i, 0).Format("2006-01")
		out[i] = MonthBucket{Month: key}
		idx[key] = i
	}
	for _, w := range workouts {
		i, ok := idx[w.Date.In(now.Location()).Format("2006-01")]
		if !ok {
			continue
		}
		out[i].Workouts++
		out[i].Minutes += nonNegative(w.DurationMinutes)
		out[i].Calories += nonNegative(w.CaloriesBurned)
	}
	return out
}

// TypeDistribution counts workouts per category, most frequent first.
func TypeDistribution(workouts []entity.Workout) []TypeBucket {
	byType := map[entity.WorkoutType]*TypeBucket{}
	for _, w := range workouts {
		b, ok := byType[w.Type]
		if !ok {
			b = &TypeBucket{Type: w.Type}
			byType[w.Type] = b
		}
		b.Workouts++
		b.Minutes += nonNegative(w.DurationMinutes)
	}
	out := make([]TypeBucket, 0, len(byType))
	for _, b := range byType {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Workouts != out[j].Workouts {
			return out[i].Workouts > out[j].Workouts
		}
		return out[i].Type < out[j].Type
	})
	return out
}

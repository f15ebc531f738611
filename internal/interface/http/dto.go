package handlers

import (
	"bytes"
	"time"

	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// Date is a calendar day encoded as YYYY-MM-DD. RFC 3339 timestamps are accepted on input.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return err
		}
		y, m, day := t2.Date()
		t = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func dateOf(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

type userView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	IsAdmin     bool       `json:"isAdmin"`
	IsActive    bool       `json:"isActive"`
	DateOfBirth *Date      `json:"dateOfBirth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	HeightCm    *float64   `json:"heightCm,omitempty"`
	WeightKg    *float64   `json:"weightKg,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role.String(),
		IsAdmin:     u.Role.IsAdministrator(),
		IsActive:    u.IsActive,
		DateOfBirth: dateOf(u.DateOfBirth),
		Gender:      u.Gender,
		HeightCm:    u.HeightCm,
		WeightKg:    u.WeightKg,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

type adminUserView struct {
	userView
	TotalWorkouts int64 `json:"totalWorkouts"`
	TotalCalories int64 `json:"totalCalories"`
}

type workoutView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	WorkoutType     string    `json:"workoutType"`
	DurationMinutes int       `json:"durationMinutes"`
	CaloriesBurned  int       `json:"caloriesBurned"`
	WorkoutDate     Date      `json:"workoutDate"`
	IntensityLevel  *int      `json:"intensityLevel,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toWorkoutView(w entity.Workout) workoutView {
	return workoutView{
		ID:              w.ID,
		Name:            w.Name,
		WorkoutType:     string(w.Type),
		DurationMinutes: w.DurationMinutes,
		CaloriesBurned:  w.CaloriesBurned,
		WorkoutDate:     Date{Time: w.Date},
		IntensityLevel:  w.IntensityLevel,
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
	}
}

func toWorkoutViews(ws []entity.Workout) []workoutView {
	out := make([]workoutView, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWorkoutView(w))
	}
	return out
}

type goalView struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	GoalType     string  `json:"goalType"`
	Description  string  `json:"description,omitempty"`
	TargetValue  float64 `json:"targetValue"`
	TargetUnit   string  `json:"targetUnit"`
	CurrentValue float64 `json:"currentValue"`
	Status       string  `json:"status"`
	StartDate    Date    `json:"startDate"`
	TargetDate   *Date   `json:"targetDate,omitempty"`
	Progress     float64 `json:"progress"`
}

func toGoalView(g application.GoalWithProgress) goalView {
	return goalView{
		ID:           g.ID,
		Title:        g.Title,
		GoalType:     g.Type,
		Description:  g.Description,
		TargetValue:  g.TargetValue,
		TargetUnit:   g.TargetUnit,
		CurrentValue: g.CurrentValue,
		Status:       string(g.Status),
		StartDate:    Date{Time: g.StartDate},
		TargetDate:   dateOf(g.TargetDate),
		Progress:     g.Progress,
	}
}

func toGoalViews(gs []application.GoalWithProgress) []goalView {
	out := make([]goalView, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGoalView(g))
	}
	return out
}

// Package memstore provides in-memory implementations of the repository
// interfaces for tests. They mirror the postgres semantics the services
// depend on, including the administrator guard on delete.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

// Store holds all tables behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	workouts []entity.Workout
	goals    map[string]entity.Goal
	settings entity.Settings

	Now func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[string]entity.User),
		goals:    make(map[string]entity.Goal),
		settings: entity.Settings{PlatformName: "FitTrack", MaxUsers: 1000},
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserStore        { return &UserStore{s} }
func (s *Store) Workouts() *WorkoutStore  { return &WorkoutStore{s} }
func (s *Store) Goals() *GoalStore        { return &GoalStore{s} }
func (s *Store) Settings() *SettingsStore { return &SettingsStore{s} }
func (s *Store) Stats() *StatsStore       { return &StatsStore{s} }

type UserStore struct{ s *Store }

func (r *UserStore) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = entity.NormalizeEmail(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return apperr.Conflict("email already registered")
		}
	}
	now := r.s.Now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserStore) get(id string, activeOnly bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok || (activeOnly && !u.IsActive) {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (r *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.get(id, false)
}

func (r *UserStore) GetActiveByID(_ context.Context, id string) (*entity.User, error) {
	return r.get(id, true)
}

func (r *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r *UserStore) UpdateProfile(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.Email = entity.NormalizeEmail(u.Email)
	for id, other := range r.s.users {
		if id != u.ID && other.Email == u.Email {
			return apperr.Conflict("email already registered")
		}
	}
	cur.FirstName, cur.LastName, cur.Email = u.FirstName, u.LastName, u.Email
	cur.DateOfBirth, cur.Gender, cur.HeightCm, cur.WeightKg = u.DateOfBirth, u.Gender, u.HeightCm, u.WeightKg
	cur.UpdatedAt = r.s.Now()
	u.UpdatedAt = cur.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *UserStore) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLoginAt = &at
		r.s.users[id] = u
	}
	return nil
}

func (r *UserStore) UpdateStatus(_ context.Context, id string, active bool, role entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.IsActive, u.Role = active, role
	u.UpdatedAt = r.s.Now()
	r.s.users[id] = u
	return nil
}

func (r *UserStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Role.IsAdministrator() {
		return apperr.NotFound("user not found")
	}
	delete(r.s.users, id)
	kept := r.s.workouts[:0]
	for _, w := range r.s.workouts {
		if w.UserID != id {
			kept = append(kept, w)
		}
	}
	r.s.workouts = kept
	for gid, g := range r.s.goals {
		if g.UserID == id {
			delete(r.s.goals, gid)
		}
	}
	return nil
}

func (r *UserStore) ListWithTotals(_ context.Context) ([]entity.UserWithTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.UserWithTotals, 0, len(r.s.users))
	for _, u := range r.s.users {
		ut := entity.UserWithTotals{User: u}
		for _, w := range r.s.workouts {
			if w.UserID == u.ID {
				ut.TotalWorkouts++
				ut.TotalCalories += int64(w.CaloriesBurned)
			}
		}
		out = append(out, ut)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type WorkoutStore struct{ s *Store }

func (r *WorkoutStore) Create(_ context.Context, w *entity.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.ID = uuid.NewString()
	w.CreatedAt = r.s.Now()
	r.s.workouts = append(r.s.workouts, *w)
	return nil
}

func (r *WorkoutStore) ListByUser(_ context.Context, userID string) ([]entity.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Workout, 0)
	for _, w := range r.s.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type GoalStore struct{ s *Store }

func (r *GoalStore) Create(_ context.Context, g *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	g.ID = uuid.NewString()
	g.CreatedAt, g.UpdatedAt = now, now
	r.s.goals[g.ID] = *g
	return nil
}

func (r *GoalStore) ListByUser(_ context.Context, userID string) ([]entity.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Goal, 0)
	for _, g := range r.s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *GoalStore) Update(_ context.Context, userID, goalID string, p entity.GoalPatch) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, apperr.NotFound("goal not found")
	}
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.TargetUnit != nil {
		g.TargetUnit = *p.TargetUnit
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.TargetDate != nil {
		g.TargetDate = p.TargetDate
	}
	g.UpdatedAt = r.s.Now()
	r.s.goals[goalID] = g
	return &g, nil
}

func (r *GoalStore) Delete(_ context.Context, userID, goalID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[goalID]
	if !ok || g.UserID != userID {
		return apperr.NotFound("goal not found")
	}
	delete(r.s.goals, goalID)
	return nil
}

type SettingsStore struct{ s *Store }

func (r *SettingsStore) Get(_ context.Context) (*entity.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v := r.s.settings
	return &v, nil
}

func (r *SettingsStore) Update(_ context.Context, p entity.SettingsPatch) (*entity.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.PlatformName != nil {
		r.s.settings.PlatformName = *p.PlatformName
	}
	if p.MaxUsers != nil {
		r.s.settings.MaxUsers = *p.MaxUsers
	}
	if p.MaintenanceMode != nil {
		r.s.settings.MaintenanceMode = *p.MaintenanceMode
	}
	r.s.settings.UpdatedAt = r.s.Now()
	v := r.s.settings
	return &v, nil
}

type StatsStore struct{ s *Store }

func (r *StatsStore) UserCounts(_ context.Context) (int64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total, active int64
	for _, u := range r.s.users {
		total++
		if u.IsActive {
			active++
		}
	}
	return total, active, nil
}

func (r *StatsStore) WorkoutTotals(_ context.Context) (int64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var calories int64
	for _, w := range r.s.workouts {
		calories += int64(w.CaloriesBurned)
	}
	return int64(len(r.s.workouts)), calories, nil
}

var (
	_ repository.UserRepository     = (*UserStore)(nil)
	_ repository.WorkoutRepository  = (*WorkoutStore)(nil)
	_ repository.GoalRepository     = (*GoalStore)(nil)
	_ repository.SettingsRepository = (*SettingsStore)(nil)
	_ repository.StatsRepository    = (*StatsStore)(nil)
)

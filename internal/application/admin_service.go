package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/policy"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/internal/domain/stats"
)

const (
	userSearchSize = 50
	reindexBatch   = 500
)

type AdminService struct {
	Users  repository.UserRepository
	Stats  repository.StatsRepository
	Index  UserIndex // optional
	Logger *logrus.Logger
}

func NewAdminService(users repository.UserRepository, st repository.StatsRepository, logger *logrus.Logger) *AdminService {
	return &AdminService{Users: users, Stats: st, Logger: logger}
}

// ListUsers returns every user with workout totals. A non-empty query narrows
// the list to search hits, in relevance order, when the search index is enabled.
func (s *AdminService) ListUsers(ctx context.Context, q string) ([]entity.UserWithTotals, error) {
	all, err := s.Users.ListWithTotals(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if q == "" || s.Index == nil || !s.Index.Enabled() {
		return all, nil
	}

	ids, err := s.Index.SearchIDs(ctx, q, userSearchSize)
	if err != nil {
		// search is an optional refinement; fall back to the full list
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("q", q).Warn("user search failed")
		}
		return all, nil
	}
	byID := make(map[string]entity.UserWithTotals, len(all))
	for _, u := range all {
		byID[u.ID] = u
	}
	out := make([]entity.UserWithTotals, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type UpdateUserInput struct {
	IsActive *bool
	Role     *entity.Role
}

// UpdateUser applies a status or role change after checking it against the stored target.
func (s *AdminService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	target, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	active, role, err := policy.ApplyStatusChange(target, policy.StatusChange{Active: in.IsActive, Role: in.Role})
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateStatus(ctx, id, active, role); err != nil {
		return nil, err
	}
	target.IsActive, target.Role = active, role

	if s.Index != nil {
		if err := s.Index.Put(ctx, target); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("reindex user failed")
		}
	}
	return target, nil
}

// DeleteUser removes a non-administrator. The role is read fresh right before deletion.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	target, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanDelete(target); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("unindex user failed")
		}
	}
	return nil
}

// ReindexUsers copies every stored user into the search index in batches,
// so accounts created before search was enabled, or written by cmd/seed, are searchable.
func (s *AdminService) ReindexUsers(ctx context.Context) (int, error) {
	if s.Index == nil || !s.Index.Enabled() {
		return 0, nil
	}
	all, err := s.Users.ListWithTotals(ctx)
	if err != nil {
		return 0, err
	}
	batch := make([]entity.User, 0, min(len(all), reindexBatch))
	done := 0
	for i, u := range all {
		batch = append(batch, u.User)
		if len(batch) < reindexBatch && i < len(all)-1 {
			continue
		}
		if err := s.Index.PutAll(ctx, batch); err != nil {
			return done, err
		}
		done += len(batch)
		batch = batch[:0]
	}
	return done, nil
}

func (s *AdminService) PlatformTotals(ctx context.Context) (*stats.PlatformTotals, error) {
	var t stats.PlatformTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.TotalUsers, t.ActiveUsers, err = s.Stats.UserCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		t.TotalWorkouts, t.TotalCalories, err = s.Stats.WorkoutTotals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

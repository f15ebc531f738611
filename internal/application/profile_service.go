package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
)

type ProfileService struct {
	Users  repository.UserRepository
	Index  UserIndex // optional
	Logger *logrus.Logger
}

func NewProfileService(users repository.UserRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, Logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// UpdateProfileInput is a partial update; nil fields keep their stored value.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *time.Time
	Gender      *string
	HeightCm    *float64
	WeightKg    *float64
}

func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		u.Email = entity.NormalizeEmail(*in.Email)
	}
	if in.DateOfBirth != nil {
		u.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		u.Gender = in.Gender
	}
	if in.HeightCm != nil {
		u.HeightCm = in.HeightCm
	}
	if in.WeightKg != nil {
		u.WeightKg = in.WeightKg
	}
	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Put(ctx, u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("reindex user failed")
		}
	}
	return u, nil
}

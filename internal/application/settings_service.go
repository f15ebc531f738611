package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
)

// SettingsService reads platform settings through a redis cache. Reads only fill
// an empty key; writes overwrite it with the stored row.
type SettingsService struct {
	Repo   repository.SettingsRepository
	Cache  *helpers.JSONCache[entity.Settings] // nil disables caching
	Logger *logrus.Logger
}

func NewSettingsService(repo repository.SettingsRepository, cache *helpers.JSONCache[entity.Settings], logger *logrus.Logger) *SettingsService {
	return &SettingsService{Repo: repo, Cache: cache, Logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (*entity.Settings, error) {
	if v, ok, err := s.Cache.Get(ctx); err != nil {
		s.warn(err, "settings cache read failed")
	} else if ok {
		return v, nil
	}

	v, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Cache.SetIfAbsent(ctx, v); err != nil {
		s.warn(err, "settings cache write failed")
	}
	return v, nil
}

func (s *SettingsService) Update(ctx context.Context, patch entity.SettingsPatch) (*entity.Settings, error) {
	v, err := s.Repo.Update(ctx, patch)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, v); err != nil {
		s.warn(err, "settings cache write failed")
		if err := s.Cache.Invalidate(ctx); err != nil {
			s.warn(err, "settings cache invalidate failed")
		}
	}
	return v, nil
}

func (s *SettingsService) warn(err error, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).Warn(msg)
	}
}

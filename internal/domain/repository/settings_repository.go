package repository

import (
	"context"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, patch entity.SettingsPatch) (*entity.Settings, error)
}

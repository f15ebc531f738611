package postgres

import (
	"context"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
)

type SettingsRepository struct {
	db DB
}

func NewSettingsRepository(db DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.db.QueryRow(ctx, `
		SELECT platform_name, max_users, maintenance_mode, updated_at FROM settings WHERE id = 1
	`).Scan(&s.PlatformName, &s.MaxUsers, &s.MaintenanceMode, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err, "get settings", "settings")
	}
	return &s, nil
}

// Update only touches the named columns; the column list is fixed, never built from input keys.
func (r *SettingsRepository) Update(ctx context.Context, p entity.SettingsPatch) (*entity.Settings, error) {
	var s entity.Settings
	err := r.db.QueryRow(ctx, `
		UPDATE settings SET
			platform_name = COALESCE($1, platform_name),
			max_users = COALESCE($2, max_users),
			maintenance_mode = COALESCE($3, maintenance_mode),
			updated_at = now()
		WHERE id = 1
		RETURNING platform_name, max_users, maintenance_mode, updated_at
	`, p.PlatformName, p.MaxUsers, p.MaintenanceMode).Scan(&s.PlatformName, &s.MaxUsers, &s.MaintenanceMode, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err, "update settings", "settings")
	}
	return &s, nil
}

var _ repository.SettingsRepository = (*SettingsRepository)(nil)

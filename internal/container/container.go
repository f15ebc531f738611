package container

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/config"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	pginfra "github.com/oksasatya/fittrack-api/internal/infrastructure/postgres"
	"github.com/oksasatya/fittrack-api/internal/infrastructure/search"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
)

const settingsCacheKey = "fittrack:settings"

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Repositories struct {
	Users    repository.UserRepository
	Workouts repository.WorkoutRepository
	Goals    repository.GoalRepository
	Settings repository.SettingsRepository
	Stats    repository.StatsRepository
}

// Container holds the components built once in main and shared by the router.
// Optional integrations are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     Pinger
	Repos  Repositories

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Redis  *redis.Client            // optional, settings cache
	Mail   *helpers.RabbitPublisher // optional, welcome emails
	Search *search.UserIndex        // optional, admin user search
}

// New builds a container over the given repositories.
func New(cfg *config.Config, logger *logrus.Logger, db Pinger, repos Repositories) *Container {
	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Repos:   repos,
		JWT:     helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}

// NewPostgres builds a container whose repositories share pool.
func NewPostgres(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool) *Container {
	return New(cfg, logger, pool, Repositories{
		Users:    pginfra.NewUserRepository(pool),
		Workouts: pginfra.NewWorkoutRepository(pool),
		Goals:    pginfra.NewGoalRepository(pool),
		Settings: pginfra.NewSettingsRepository(pool),
		Stats:    pginfra.NewStatsRepository(pool),
	})
}

// SettingsCache is nil-safe: without redis every read goes to the database.
func (c *Container) SettingsCache() *helpers.JSONCache[entity.Settings] {
	ttl := c.Config.SettingsCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return helpers.NewJSONCache[entity.Settings](c.Redis, settingsCacheKey, ttl)
}

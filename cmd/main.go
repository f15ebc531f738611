package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/config"
	"github.com/oksasatya/fittrack-api/internal/application"
	"github.com/oksasatya/fittrack-api/internal/container"
	pginfra "github.com/oksasatya/fittrack-api/internal/infrastructure/postgres"
	"github.com/oksasatya/fittrack-api/internal/infrastructure/search"
	"github.com/oksasatya/fittrack-api/internal/router"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
	"github.com/oksasatya/fittrack-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	c := container.NewPostgres(cfg, logger, pool)

	// Redis (settings cache)
	if cfg.RedisAddr != "" {
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = c.Redis.Close() }()
	}

	// RabbitMQ (welcome emails)
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable, welcome emails disabled", err, nil)
		} else {
			c.Mail = pub
			defer pub.Close()
		}
	}

	// Elasticsearch (admin user search)
	if idx, err := openUserIndex(ctx, cfg); err != nil {
		helpers.LogError(logger, "elasticsearch unavailable, user search disabled", err, nil)
	} else if idx != nil {
		c.Search = idx
		go backfillUserIndex(ctx, c)
	}

	r, err := router.NewEngine(c)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	stop, cancelStop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancelStop()
	<-stop.Done()
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// openUserIndex returns nil without error when no Elasticsearch address is configured.
func openUserIndex(ctx context.Context, cfg *config.Config) (*search.UserIndex, error) {
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil || es == nil {
		return nil, err
	}
	idx := search.NewUserIndex(es, cfg.ESUsersIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

// backfillUserIndex indexes users that predate the search index; writes after
// startup keep it current.
func backfillUserIndex(ctx context.Context, c *container.Container) {
	admin := application.NewAdminService(c.Repos.Users, c.Repos.Stats, c.Logger)
	admin.Index = c.Search
	n, err := admin.ReindexUsers(ctx)
	if err != nil {
		helpers.LogError(c.Logger, "user index backfill failed", err, logrus.Fields{"indexed": n})
		return
	}
	helpers.LogInfo(c.Logger, "user index backfilled", logrus.Fields{"indexed": n})
}

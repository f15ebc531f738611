package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/fittrack-api/config"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	pginfra "github.com/oksasatya/fittrack-api/internal/infrastructure/postgres"
	"github.com/oksasatya/fittrack-api/internal/infrastructure/search"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
)

// seed ensures an administrator account exists for ADMIN_EMAIL.
// An existing account with that email is promoted and reactivated.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, pginfra.PoolOptions{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)

	existing, err := users.GetByEmail(ctx, cfg.AdminEmail)
	switch {
	case err == nil:
		if err := users.UpdateStatus(ctx, existing.ID, true, entity.RoleAdministrator); err != nil {
			log.Fatalf("failed to promote %s: %v", existing.Email, err)
		}
		existing.Role, existing.IsActive = entity.RoleAdministrator, true
		indexAdmin(ctx, cfg, existing)
		fmt.Printf("promoted existing user: id=%s email=%s\n", existing.ID, existing.Email)
		return
	case !apperr.Is(err, apperr.KindNotFound):
		log.Fatalf("failed to look up admin: %v", err)
	}

	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	u := &entity.User{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         entity.RoleAdministrator,
		IsActive:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	indexAdmin(ctx, cfg, u)
	fmt.Printf("seeded admin: id=%s email=%s\n", u.ID, u.Email)
}

// indexAdmin makes the seeded account searchable right away when search is configured.
// The API also backfills the index on startup, so a failure here is only reported.
func indexAdmin(ctx context.Context, cfg *config.Config, u *entity.User) {
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil || es == nil {
		if err != nil {
			log.Printf("search index skipped: %v", err)
		}
		return
	}
	idx := search.NewUserIndex(es, cfg.ESUsersIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		log.Printf("search index skipped: %v", err)
		return
	}
	if err := idx.Put(ctx, u); err != nil {
		log.Printf("failed to index admin: %v", err)
	}
}

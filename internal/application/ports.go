package application

import (
	"context"
	"time"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

// TokenIssuer mints bearer credentials; satisfied by *helpers.JWTManager.
type TokenIssuer interface {
	Issue(userID string, role entity.Role) (string, time.Time, error)
}

// JobPublisher puts a JSON job on the email queue; satisfied by *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndex mirrors users into the search index; satisfied by *search.UserIndex.
type UserIndex interface {
	Enabled() bool
	Put(ctx context.Context, u *entity.User) error
	PutAll(ctx context.Context, users []entity.User) error
	Remove(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, q string, size int) ([]string, error)
}

func utcNow() time.Time { return time.Now().UTC() }

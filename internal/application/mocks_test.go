package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

type mockIndex struct{ mock.Mock }

func (m *mockIndex) Enabled() bool { return m.Called().Bool(0) }

func (m *mockIndex) Put(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockIndex) PutAll(ctx context.Context, users []entity.User) error {
	return m.Called(ctx, users).Error(0)
}

func (m *mockIndex) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndex) SearchIDs(ctx context.Context, q string, size int) ([]string, error) {
	args := m.Called(ctx, q, size)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/testkit/memstore"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

func TestGoalService_LifecycleAndOwnership(t *testing.T) {
	store := memstore.New()
	svc := NewGoalService(store.Goals())
	svc.Now = func() time.Time { return time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	g, err := svc.Create(ctx, "owner", CreateGoalInput{Title: "Run 100km", Type: "distance", TargetValue: 100, TargetUnit: "km", CurrentValue: 25})
	require.NoError(t, err)
	assert.Equal(t, entity.GoalInProgress, g.Status)
	assert.Equal(t, 25.0, g.Progress)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), g.StartDate)

	over := 140.0
	updated, err := svc.Update(ctx, "owner", g.ID, entity.GoalPatch{CurrentValue: &over})
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.Progress)

	_, err = svc.Update(ctx, "intruder", g.ID, entity.GoalPatch{CurrentValue: &over})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(svc.Delete(ctx, "intruder", g.ID), apperr.KindNotFound))

	require.NoError(t, svc.Delete(ctx, "owner", g.ID))
	list, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGoalService_ZeroTargetHasNoProgress(t *testing.T) {
	svc := NewGoalService(memstore.New().Goals())
	g, err := svc.Create(context.Background(), "owner", CreateGoalInput{Title: "Stretch", Type: "habit", CurrentValue: 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.Progress)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/callback-service/internal/domain"
)

func TestCallbackStats(t *testing.T) {
	callbacks := &mockCallbackRepo{}
	svc := NewAnalyticsService(callbacks, &mockCheckRepo{})
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	}

	rows := []domain.Callback{
		{AgentName: "A", CallbackDate: "2026-08-29", CallbackType: domain.CallbackTypeHot},
		{AgentName: "A", CallbackDate: "2026-08-30", CallbackType: domain.CallbackTypeCold},
		{AgentName: "A", CallbackDate: "2026-08-29", CallbackType: domain.CallbackTypeCold},
		{AgentName: "B", CallbackDate: "2026-08-29", CallbackType: domain.CallbackTypeWarm},
	}
	for i := range rows {
		require.NoError(t, callbacks.Create(context.Background(), &rows[i]))
	}

	all, err := svc.CallbackStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 3, all.DueToday)
	assert.Equal(t, 2, all.ByType[domain.CallbackTypeCold])
	assert.Equal(t, 1, all.ByType[domain.CallbackTypeWarm])
	assert.Equal(t, 1, all.ByType[domain.CallbackTypeHot])

	agent := "A"
	own, err := svc.CallbackStats(context.Background(), &agent)
	require.NoError(t, err)
	assert.Equal(t, 3, own.Total)
	assert.Equal(t, 2, own.DueToday)
	assert.Equal(t, 0, own.ByType[domain.CallbackTypeWarm])
}

func TestCallbackStats_Empty(t *testing.T) {
	svc := NewAnalyticsService(&mockCallbackRepo{}, &mockCheckRepo{})

	stats, err := svc.CallbackStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.DueToday)
	assert.Empty(t, stats.ByType)
}

func TestCheckStats(t *testing.T) {
	checks := &mockCheckRepo{}
	svc := NewAnalyticsService(&mockCallbackRepo{}, checks)

	rows := []domain.Check{
		{AgentName: "A", Plan: domain.CheckPlanHMO, Date: "2026-08-29"},
		{AgentName: "A", Plan: domain.CheckPlanPPO, Date: "2026-08-29"},
		{AgentName: "B", Plan: domain.CheckPlanHMO, Date: "2026-08-29"},
		{AgentName: "B", Plan: domain.CheckPlanOPlan, Date: "2026-08-29"},
	}
	for i := range rows {
		require.NoError(t, checks.Create(context.Background(), &rows[i]))
	}

	all, err := svc.CheckStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 2, all.ByPlan[domain.CheckPlanHMO])
	assert.Equal(t, 1, all.ByPlan[domain.CheckPlanPPO])
	assert.Equal(t, 1, all.ByPlan[domain.CheckPlanOPlan])

	agent := "B"
	own, err := svc.CheckStats(context.Background(), &agent)
	require.NoError(t, err)
	assert.Equal(t, 2, own.Total)
	assert.Equal(t, 1, own.ByPlan[domain.CheckPlanHMO])
}

package schedule

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-mcp/internal/domain/model"
)

type countingHealthUseCase struct {
	refreshes atomic.Int32
	lastCtx   context.Context
}

func (c *countingHealthUseCase) CheckHealth() model.HealthResponse {
	return model.HealthResponse{Status: model.StatusUp}
}

func (c *countingHealthUseCase) RefreshProviderHealth(ctx context.Context) model.ComponentHealthStatus {
	c.lastCtx = ctx
	c.refreshes.Add(1)
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

func TestInitProviderHealthScheduleTasks(t *testing.T) {
	useCase := &countingHealthUseCase{}
	scheduler := NewProviderHealthScheduler(useCase, "@every 1h")

	require.NoError(t, scheduler.InitProviderHealthScheduleTasks(context.Background()))
	defer scheduler.Stop()

	assert.Len(t, scheduler.cron.Entries(), 1)
	assert.Equal(t, int32(0), useCase.refreshes.Load())
}

func TestInitProviderHealthScheduleTasksRejectsExpression(t *testing.T) {
	scheduler := NewProviderHealthScheduler(&countingHealthUseCase{}, "not a cron")

	err := scheduler.InitProviderHealthScheduleTasks(context.Background())

	require.Error(t, err)
	assert.Empty(t, scheduler.cron.Entries())
}

func TestExecuteScheduledTaskUsesSchedulerContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "probe")
	useCase := &countingHealthUseCase{}
	scheduler := NewProviderHealthScheduler(useCase, "@every 1h")
	require.NoError(t, scheduler.InitProviderHealthScheduleTasks(ctx))
	defer scheduler.Stop()

	scheduler.ExecuteScheduledTask()

	assert.Equal(t, int32(1), useCase.refreshes.Load())
	assert.Equal(t, "probe", useCase.lastCtx.Value(key{}))
}

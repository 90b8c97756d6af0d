package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-mcp/internal/domain/usecase/health"
	"weather-mcp/pkg/log"
	"weather-mcp/pkg/msg"
)

// ProviderHealthScheduler periodically probes the weather provider so /health can answer without calling it
type ProviderHealthScheduler struct {
	cron           *cron.Cron
	useCase        health.UseCase
	cronExpression string
	ctx            context.Context
}

func NewProviderHealthScheduler(useCase health.UseCase, cronExpression string) *ProviderHealthScheduler {
	return &ProviderHealthScheduler{
		cron:           cron.New(),
		useCase:        useCase,
		cronExpression: cronExpression,
		ctx:            context.Background(),
	}
}

// InitProviderHealthScheduleTasks registers the probe and starts the cron. Probes run with ctx,
// so cancelling it aborts an in-flight probe.
func (s *ProviderHealthScheduler) InitProviderHealthScheduleTasks(ctx context.Context) error {
	s.ctx = ctx

	_, err := s.cron.AddFunc(s.cronExpression, s.ExecuteScheduledTask)
	if err != nil {
		log.Error(msg.GetMessage("provider.health.schedule-fail", err), zap.Error(err))
		return err
	}

	s.cron.Start()
	log.Info(msg.GetMessage("provider.health.scheduled", s.cronExpression))
	return nil
}

// ExecuteScheduledTask runs one provider probe
func (s *ProviderHealthScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	log.Debug(msg.GetMessage("provider.health.start"), zap.String("request_id", requestID))

	providerHealth := s.useCase.RefreshProviderHealth(s.ctx)
	log.Debug(msg.GetMessage("provider.health.end", providerHealth.Status),
		zap.String("request_id", requestID),
		zap.String("status", string(providerHealth.Status)),
	)
}

// Stop gracefully stops the scheduler, waiting for a running probe
func (s *ProviderHealthScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

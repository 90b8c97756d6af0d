package health

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"weather-mcp/internal/domain/gateway/api"
	"weather-mcp/internal/domain/model"
	"weather-mcp/pkg/log"
	"weather-mcp/pkg/msg"
)

type healthUseCase struct {
	apiGateway api.WeatherGateway

	mutex          sync.RWMutex
	providerHealth model.ComponentHealthStatus
}

func NewHealthUseCase(apiGateway api.WeatherGateway) UseCase {
	return &healthUseCase{
		apiGateway:     apiGateway,
		providerHealth: model.ComponentHealthStatus{Status: model.StatusUnknown, Details: map[string]string{}},
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	useCase.mutex.RLock()
	providerHealth := useCase.providerHealth
	useCase.mutex.RUnlock()

	overallStatus := model.StatusUp
	if providerHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Provider: providerHealth,
	}
}

func (useCase *healthUseCase) RefreshProviderHealth(ctx context.Context) model.ComponentHealthStatus {
	providerHealth := useCase.apiGateway.Health(ctx)
	if providerHealth.Status == model.StatusUp {
		log.Info(msg.GetMessage("provider.health.up", providerHealth.Details["latency"]))
	} else {
		log.Warn(msg.GetMessage("provider.health.down", providerHealth.Details["error"]),
			zap.String("error", providerHealth.Details["error"]))
	}

	useCase.mutex.Lock()
	useCase.providerHealth = providerHealth
	useCase.mutex.Unlock()

	return providerHealth
}

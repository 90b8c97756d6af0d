package health

import (
	"context"

	"weather-mcp/internal/domain/model"
)

type UseCase interface {
	// CheckHealth reports the last known provider status without calling the provider
	CheckHealth() model.HealthResponse

	// RefreshProviderHealth probes the provider and stores the result for CheckHealth
	RefreshProviderHealth(ctx context.Context) model.ComponentHealthStatus
}

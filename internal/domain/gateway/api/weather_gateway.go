package api

import (
	"context"
	"errors"
	"time"

	"weather-mcp/internal/domain/entity"
	"weather-mcp/internal/domain/model"
	"weather-mcp/internal/domain/model/external"
)

// ErrProviderUnavailable wraps every failure to obtain a provider document:
// TLS and transport errors, non-2xx statuses, undecodable or empty bodies, and an open circuit.
var ErrProviderUnavailable = errors.New("weather provider unavailable")

// WeatherGateway defines the interface for weather-related external API calls
type WeatherGateway interface {
	// GetCurrentConditions gets temperature, humidity, apparent temperature, precipitation and
	// weather code for the coordinate.
	GetCurrentConditions(ctx context.Context, coordinate entity.Coordinate) (external.OpenMeteoResponse, error)

	// GetDailyForecast gets daily max/min temperature, precipitation sum and weather code,
	// in the coordinate's local timezone.
	GetDailyForecast(ctx context.Context, coordinate entity.Coordinate) (external.OpenMeteoResponse, error)

	// Health issues a minimal request to the provider and reports whether it answered.
	Health(ctx context.Context) model.ComponentHealthStatus
}

// WeatherGatewayConfig is fixed at construction; nothing in it is read from the environment at call time.
type WeatherGatewayConfig struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	SSLVerify      bool
	CircuitBreaker CircuitBreakerConfig
}

// CircuitBreakerConfig enables an optional breaker around provider calls.
// When open, calls fail immediately with ErrProviderUnavailable.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

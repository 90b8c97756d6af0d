package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"weather-mcp/internal/domain/entity"
	"weather-mcp/internal/domain/model"
	"weather-mcp/internal/domain/model/external"
	"weather-mcp/pkg/http"
	"weather-mcp/pkg/log"
	"weather-mcp/pkg/msg"
)

const (
	forecastPath   = "/forecast"
	currentFields  = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code"
	dailyFields    = "temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code"
	probeFields    = "temperature_2m"
	defaultTimeout = 30 * time.Second
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewWeatherGateway creates a new instance of WeatherGateway backed by Open-Meteo
func NewWeatherGateway(config WeatherGatewayConfig) WeatherGateway {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := http.NewHttpClient(config.BaseURL, http.ClientOptions{
		DefaultHeaders: map[string]string{
			"User-Agent": config.UserAgent,
			"Accept":     "application/json",
		},
		ReadTimeout:        timeout,
		ConnectionTimeout:  timeout,
		InsecureSkipVerify: !config.SSLVerify,
		Logger:             providerLogger{},
	})

	return &weatherGatewayImpl{
		httpClient: httpClient,
		breaker:    newCircuitBreaker(config.CircuitBreaker),
	}
}

func newCircuitBreaker(config CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	if !config.Enabled {
		return nil
	}
	threshold := config.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "open-meteo",
		Timeout: config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller abandoning its request says nothing about the provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(msg.GetMessage("provider.error.circuit", name, from, to))
		},
	})
}

// GetCurrentConditions gets current conditions for a coordinate
func (w *weatherGatewayImpl) GetCurrentConditions(ctx context.Context, coordinate entity.Coordinate) (external.OpenMeteoResponse, error) {
	query := coordinateQuery(coordinate)
	query["current"] = currentFields

	log.Info(msg.GetMessage("weather.request.current", w.httpClient.URL(forecastPath, query)))
	return w.fetch(ctx, query)
}

// GetDailyForecast gets the daily forecast for a coordinate
func (w *weatherGatewayImpl) GetDailyForecast(ctx context.Context, coordinate entity.Coordinate) (external.OpenMeteoResponse, error) {
	query := coordinateQuery(coordinate)
	query["daily"] = dailyFields
	query["timezone"] = "auto"

	log.Info(msg.GetMessage("weather.request.forecast", w.httpClient.URL(forecastPath, query)))
	return w.fetch(ctx, query)
}

// Health probes the provider with the smallest current-conditions request
func (w *weatherGatewayImpl) Health(ctx context.Context) model.ComponentHealthStatus {
	query := coordinateQuery(entity.Coordinate{})
	query["current"] = probeFields

	start := time.Now()
	_, err := w.fetch(ctx, query)
	latency := time.Since(start)

	if err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"error":   err.Error(),
				"latency": latency.String(),
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"latency": latency.String(),
		},
	}
}

func (w *weatherGatewayImpl) fetch(ctx context.Context, query map[string]string) (external.OpenMeteoResponse, error) {
	if w.breaker == nil {
		return w.execute(ctx, query)
	}

	result, err := w.breaker.Execute(func() (interface{}, error) {
		return w.execute(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Error(msg.GetMessage("provider.error.failed", err), zap.Error(err))
			return external.OpenMeteoResponse{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		return external.OpenMeteoResponse{}, err
	}
	return result.(external.OpenMeteoResponse), nil
}

func (w *weatherGatewayImpl) execute(ctx context.Context, query map[string]string) (external.OpenMeteoResponse, error) {
	successResp, errResp, _, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(forecastPath).
		WithQueryParams(query).
		WithSuccessResp(&external.OpenMeteoResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		if errResp != nil {
			errorResponse := errResp.(*external.APIErrorResponse)
			log.Error(msg.GetMessage("provider.error.reason", errorResponse.Reason),
				zap.String("reason", errorResponse.Reason))
		}
		return external.OpenMeteoResponse{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	response := *successResp.(*external.OpenMeteoResponse)
	if response.IsEmpty() {
		log.Error(msg.GetMessage("provider.error.empty"))
		return external.OpenMeteoResponse{}, fmt.Errorf("%w: empty document", ErrProviderUnavailable)
	}
	return response, nil
}

// coordinateQuery renders coordinates with the shortest exact decimal form, e.g. 13.7563 and -74.006
func coordinateQuery(coordinate entity.Coordinate) map[string]string {
	return map[string]string{
		"latitude":  strconv.FormatFloat(coordinate.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(coordinate.Longitude, 'f', -1, 64),
	}
}

// providerLogger writes one diagnostic line per provider attempt and one per failure.
type providerLogger struct{}

func (providerLogger) LogRequest(method, url string, _ nethttp.Header) {
	log.Debug(msg.GetMessage("provider.request", url), zap.String("method", method), zap.String("url", url))
}

func (providerLogger) LogResponseSuccess(method, url string, httpStatus int, latency time.Duration) {
	log.Debug(msg.GetMessage("provider.response", httpStatus, url, latency),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Duration("latency", latency),
	)
}

func (providerLogger) LogResponseError(method, url string, httpStatus int, latency time.Duration, err error) {
	var message string
	var statusErr *http.StatusError
	switch {
	case isTLSError(err):
		message = msg.GetMessage("provider.error.tls", err)
	case errors.As(err, &statusErr):
		message = msg.GetMessage("provider.error.status", statusErr.StatusCode)
	default:
		message = msg.GetMessage("provider.error.failed", err)
	}

	log.Error(message,
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Duration("latency", latency),
		zap.Error(err),
	)
}

func isTLSError(err error) bool {
	var verificationErr *tls.CertificateVerificationError
	var unknownAuthorityErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	var recordHeaderErr tls.RecordHeaderError

	return errors.As(err, &verificationErr) ||
		errors.As(err, &unknownAuthorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &recordHeaderErr)
}

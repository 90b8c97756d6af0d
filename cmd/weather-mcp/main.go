package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"weather-mcp/configs"
	"weather-mcp/internal/application/controller"
	"weather-mcp/internal/application/middleware"
	"weather-mcp/internal/application/schedule"
	"weather-mcp/internal/domain/gateway/api"
	"weather-mcp/internal/domain/gateway/city"
	"weather-mcp/internal/domain/usecase/health"
	"weather-mcp/internal/domain/usecase/weather"
	"weather-mcp/internal/infra/mcpserver"
	"weather-mcp/pkg/log"
	"weather-mcp/pkg/msg"
	"weather-mcp/pkg/resource"
)

func main() {
	log.Info(msg.GetMessage("app.start"))
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init Gateway
	weatherGateway := api.NewWeatherGateway(api.WeatherGatewayConfig{
		BaseURL:   resource.GetString("app.provider.base-url"),
		UserAgent: resource.GetString("app.provider.user-agent"),
		Timeout:   resource.GetDuration("app.provider.timeout"),
		SSLVerify: configs.Env.SSLVerify,
		CircuitBreaker: api.CircuitBreakerConfig{
			Enabled:          resource.GetBool("app.provider.circuit-breaker.enabled"),
			FailureThreshold: resource.GetUint32("app.provider.circuit-breaker.failure-threshold"),
			OpenTimeout:      resource.GetDuration("app.provider.circuit-breaker.open-timeout"),
		},
	})
	cityGateway := city.NewStaticCityGateway()

	// Init UseCase
	weatherUseCase := weather.NewWeatherUseCase(weatherGateway, cityGateway)
	healthUseCase := health.NewHealthUseCase(weatherGateway)

	// Init MCP Server
	server := mcpserver.NewServer(configs.Env.ApplicationName, resource.GetString("app.version"))
	weatherToolController := controller.NewWeatherToolController(server, weatherUseCase)
	weatherToolController.InitWeatherTools()
	weatherToolController.InitWeatherResources()

	// Start Transport
	transport := resource.GetString("app.transport")
	var err error
	switch transport {
	case "stdio":
		log.Info(msg.GetMessage("app.started", resource.GetString("app.version"), transport))
		err = server.Run(ctx, &mcp.StdioTransport{})
	case "http":
		err = serveHTTP(ctx, server, healthUseCase)
	default:
		log.Fatal(msg.GetMessage("app.transport.unsupported", transport))
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err.Error(), zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stopped"))
}

// serveHTTP exposes the MCP endpoint and /health until ctx is cancelled, then shuts down gracefully
func serveHTTP(ctx context.Context, server *mcp.Server, healthUseCase health.UseCase) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.SetupRequestLogger(e)
	contextPath := resource.GetString("app.server.context-path")
	routes := e.Group(contextPath)

	// Init Controller
	mcpController := controller.NewMCPController(routes, server)
	healthController := controller.NewHealthController(routes, healthUseCase)

	// Init Routes
	mcpController.InitMCPRoutes()
	healthController.InitHealthRoutes()

	// Init Schedule
	if resource.GetBool("app.provider.health.enabled") {
		healthScheduler := schedule.NewProviderHealthScheduler(healthUseCase, resource.GetString("app.provider.health.cron"))
		if err := healthScheduler.InitProviderHealthScheduleTasks(ctx); err != nil {
			return err
		}
		defer healthScheduler.Stop()
	}

	// Start Routes
	port := resource.GetString("app.server.port")
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + port)
	}()
	log.Info(msg.GetMessage("app.started", resource.GetString("app.version"), "http"))
	log.Info(msg.GetMessage("app.listening", port, contextPath))

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), resource.GetDuration("app.server.shutdown-timeout"))
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

package controller

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"weather-mcp/internal/domain/model"
	"weather-mcp/internal/domain/usecase/weather"
	"weather-mcp/pkg/msg"
)

const popularCitiesURI = "weather://popular-cities"

type WeatherToolController struct {
	server  *mcp.Server
	useCase weather.UseCase
}

func NewWeatherToolController(server *mcp.Server, useCase weather.UseCase) *WeatherToolController {
	return &WeatherToolController{server: server, useCase: useCase}
}

// InitWeatherTools registers the weather tools
func (controller *WeatherToolController) InitWeatherTools() {
	mcp.AddTool(controller.server, &mcp.Tool{
		Name:        "get_current_weather",
		Description: msg.GetMessage("weather.tool.current"),
	}, controller.GetCurrentWeather())

	mcp.AddTool(controller.server, &mcp.Tool{
		Name:        "get_forecast",
		Description: msg.GetMessage("weather.tool.forecast"),
	}, controller.GetForecast())

	mcp.AddTool(controller.server, &mcp.Tool{
		Name:        "get_weather_by_city",
		Description: msg.GetMessage("weather.tool.city"),
	}, controller.GetWeatherByCity())
}

// InitWeatherResources registers the weather resources
func (controller *WeatherToolController) InitWeatherResources() {
	controller.server.AddResource(&mcp.Resource{
		URI:         popularCitiesURI,
		Name:        "get_popular_cities",
		Description: msg.GetMessage("weather.resource.popular-cities"),
		MIMEType:    "text/plain",
	}, controller.GetPopularCities())
}

func (controller *WeatherToolController) GetCurrentWeather() mcp.ToolHandlerFor[model.CoordinateRequest, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input model.CoordinateRequest) (*mcp.CallToolResult, any, error) {
		return textResult(controller.useCase.GetCurrentWeather(ctx, input.Latitude, input.Longitude)), nil, nil
	}
}

func (controller *WeatherToolController) GetForecast() mcp.ToolHandlerFor[model.CoordinateRequest, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input model.CoordinateRequest) (*mcp.CallToolResult, any, error) {
		return textResult(controller.useCase.GetForecast(ctx, input.Latitude, input.Longitude)), nil, nil
	}
}

func (controller *WeatherToolController) GetWeatherByCity() mcp.ToolHandlerFor[model.CityRequest, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input model.CityRequest) (*mcp.CallToolResult, any, error) {
		return textResult(controller.useCase.GetWeatherByCity(ctx, input.CityName)), nil, nil
	}
}

func (controller *WeatherToolController) GetPopularCities() mcp.ResourceHandler {
	return func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      popularCitiesURI,
				MIMEType: "text/plain",
				Text:     controller.useCase.GetPopularCities(ctx),
			}},
		}, nil
	}
}

// textResult wraps a tool answer; sentinel sentences are ordinary results, not tool errors.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

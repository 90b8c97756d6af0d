package weather

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"weather-mcp/internal/domain/entity"
	"weather-mcp/internal/domain/gateway/api"
	"weather-mcp/internal/domain/gateway/city"
	"weather-mcp/pkg/log"
	"weather-mcp/pkg/msg"
)

type weatherUseCase struct {
	apiGateway  api.WeatherGateway
	cityGateway city.CityGateway
}

func NewWeatherUseCase(apiGateway api.WeatherGateway, cityGateway city.CityGateway) UseCase {
	return &weatherUseCase{
		apiGateway:  apiGateway,
		cityGateway: cityGateway,
	}
}

// GetCurrentWeather fetches current conditions and dumps them unchanged
func (uc *weatherUseCase) GetCurrentWeather(ctx context.Context, latitude float64, longitude float64) string {
	document, err := uc.apiGateway.GetCurrentConditions(ctx, entity.Coordinate{Latitude: latitude, Longitude: longitude})
	if err != nil {
		return msg.GetMessage("weather.error.current-unavailable")
	}

	text, err := FormatCurrent(document)
	if err != nil {
		log.Error(msg.GetMessage("provider.error.failed", err), zap.Error(err))
		return msg.GetMessage("weather.error.current-unavailable")
	}
	return text
}

// GetForecast fetches the daily forecast and renders it as text blocks
func (uc *weatherUseCase) GetForecast(ctx context.Context, latitude float64, longitude float64) string {
	document, err := uc.apiGateway.GetDailyForecast(ctx, entity.Coordinate{Latitude: latitude, Longitude: longitude})
	if err != nil {
		return msg.GetMessage("weather.error.forecast-unavailable")
	}
	return FormatForecast(document)
}

// GetWeatherByCity resolves the city and delegates to GetCurrentWeather
func (uc *weatherUseCase) GetWeatherByCity(ctx context.Context, cityName string) string {
	found, err := uc.cityGateway.FindByName(cityName)
	if err != nil {
		var notFound *city.NotFoundError
		if errors.As(err, &notFound) {
			log.Info(err.Error(), zap.String("city_name", notFound.Name))
			return msg.GetMessage("weather.error.city-not-found", notFound.Name)
		}
		return msg.GetMessage("weather.error.city-not-found", cityName)
	}

	return uc.GetCurrentWeather(ctx, found.Coordinate.Latitude, found.Coordinate.Longitude)
}

// GetPopularCities lists every city of the table in its declared order
func (uc *weatherUseCase) GetPopularCities(_ context.Context) string {
	cities := uc.cityGateway.FindAll()

	lines := make([]string, 0, len(cities))
	for _, c := range cities {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

package weather

import "context"

// UseCase answers the weather tools. Every method returns the text handed back to the tool caller;
// provider and lookup failures are reported as fixed sentences, never as errors.
type UseCase interface {
	// GetCurrentWeather returns the provider's current-conditions document as indented JSON
	GetCurrentWeather(ctx context.Context, latitude float64, longitude float64) string

	// GetForecast returns one text block per forecast day
	GetForecast(ctx context.Context, latitude float64, longitude float64) string

	// GetWeatherByCity resolves a known city and returns its current weather
	GetWeatherByCity(ctx context.Context, cityName string) string

	// GetPopularCities lists the known cities with their coordinates, one per line
	GetPopularCities(ctx context.Context) string
}

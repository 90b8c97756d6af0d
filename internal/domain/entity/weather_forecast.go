package entity

// WeatherForecast is one day of a daily forecast. Values keep the provider's literal text;
// a missing value is rendered as "N/A".
type WeatherForecast struct {
	Date           string `json:"date"`
	MaxTemperature string `json:"maxTemperature"`
	MinTemperature string `json:"minTemperature"`
	Precipitation  string `json:"precipitation"`
}

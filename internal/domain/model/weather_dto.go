package model

// CoordinateRequest contains input parameters for the coordinate based weather tools.
type CoordinateRequest struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude of the location"`
}

// CityRequest contains input parameters for the get_weather_by_city tool.
type CityRequest struct {
	CityName string `json:"city_name" jsonschema:"Name of the city"`
}

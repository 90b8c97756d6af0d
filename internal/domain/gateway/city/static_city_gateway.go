package city

import (
	"strings"

	"weather-mcp/internal/domain/entity"
)

var popularCities = []entity.City{
	{Name: "Bangkok", Coordinate: entity.Coordinate{Latitude: 13.7563, Longitude: 100.5018}},
	{Name: "Tokyo", Coordinate: entity.Coordinate{Latitude: 35.6762, Longitude: 139.6503}},
	{Name: "New York", Coordinate: entity.Coordinate{Latitude: 40.7128, Longitude: -74.0060}},
	{Name: "London", Coordinate: entity.Coordinate{Latitude: 51.5074, Longitude: -0.1278}},
	{Name: "Paris", Coordinate: entity.Coordinate{Latitude: 48.8566, Longitude: 2.3522}},
	{Name: "Singapore", Coordinate: entity.Coordinate{Latitude: 1.3521, Longitude: 103.8198}},
	{Name: "Sydney", Coordinate: entity.Coordinate{Latitude: -33.8688, Longitude: 151.2093}},
	{Name: "Los Angeles", Coordinate: entity.Coordinate{Latitude: 34.0522, Longitude: -118.2437}},
}

// staticCityGateway implements CityGateway over a fixed table. It is never written after construction.
type staticCityGateway struct {
	cities []entity.City
	index  map[string]entity.City
}

// NewStaticCityGateway creates a CityGateway over the built-in popular cities table.
func NewStaticCityGateway() CityGateway {
	index := make(map[string]entity.City, len(popularCities))
	for _, c := range popularCities {
		index[strings.ToLower(c.Name)] = c
	}

	return &staticCityGateway{
		cities: popularCities,
		index:  index,
	}
}

func (g *staticCityGateway) FindByName(name string) (entity.City, error) {
	if c, ok := g.index[strings.ToLower(name)]; ok {
		return c, nil
	}
	return entity.City{}, &NotFoundError{Name: name}
}

func (g *staticCityGateway) FindAll() []entity.City {
	cities := make([]entity.City, len(g.cities))
	copy(cities, g.cities)
	return cities
}

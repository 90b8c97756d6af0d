package city

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-mcp/internal/domain/entity"
)

func TestFindByName(t *testing.T) {
	gateway := NewStaticCityGateway()

	tests := []struct {
		input string
		want  entity.Coordinate
	}{
		{input: "bangkok", want: entity.Coordinate{Latitude: 13.7563, Longitude: 100.5018}},
		{input: "TOKYO", want: entity.Coordinate{Latitude: 35.6762, Longitude: 139.6503}},
		{input: "New York", want: entity.Coordinate{Latitude: 40.7128, Longitude: -74.0060}},
		{input: "lOnDoN", want: entity.Coordinate{Latitude: 51.5074, Longitude: -0.1278}},
		{input: "Paris", want: entity.Coordinate{Latitude: 48.8566, Longitude: 2.3522}},
		{input: "singapore", want: entity.Coordinate{Latitude: 1.3521, Longitude: 103.8198}},
		{input: "Sydney", want: entity.Coordinate{Latitude: -33.8688, Longitude: 151.2093}},
		{input: "LOS ANGELES", want: entity.Coordinate{Latitude: 34.0522, Longitude: -118.2437}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := gateway.FindByName(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Coordinate)
		})
	}
}

func TestFindByNameMiss(t *testing.T) {
	gateway := NewStaticCityGateway()

	for _, input := range []string{"Atlantis", "New", "new  york", " Tokyo", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := gateway.FindByName(input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCityNotFound))

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, input, notFound.Name)
		})
	}
}

func TestFindAll(t *testing.T) {
	gateway := NewStaticCityGateway()

	cities := gateway.FindAll()
	require.Len(t, cities, 8)

	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Bangkok", "Tokyo", "New York", "London", "Paris", "Singapore", "Sydney", "Los Angeles"}, names)

	cities[0].Name = "Changed"
	assert.Equal(t, "Bangkok", gateway.FindAll()[0].Name)
}

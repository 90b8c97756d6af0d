package city

import (
	"errors"
	"fmt"

	"weather-mcp/internal/domain/entity"
)

// ErrCityNotFound is matched by every *NotFoundError.
var ErrCityNotFound = errors.New("city not found")

// NotFoundError carries the city name exactly as the caller wrote it.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCityNotFound
}

// CityGateway resolves city names to coordinates.
type CityGateway interface {
	// FindByName looks the name up case-insensitively.
	// A miss returns a *NotFoundError holding the original name.
	FindByName(name string) (entity.City, error)

	// FindAll returns every known city in table order.
	FindAll() []entity.City
}

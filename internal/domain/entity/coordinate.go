package entity

import "fmt"

// Coordinate is a latitude/longitude pair. Ranges are not checked; the provider rejects invalid values.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the pair with four decimals, e.g. "40.7128, -74.0060".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

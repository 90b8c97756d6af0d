package entity

import "fmt"

type City struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// String renders the city as "Name (lat, lon)".
func (c City) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Coordinate)
}

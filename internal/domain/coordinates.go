package domain

import "github.com/paulmach/orb"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Point converts the coordinates to an orb point (x = lon, y = lat).
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }

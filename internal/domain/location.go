package domain

// Represents a named stop in a distribution problem.
// X holds the longitude and Y the latitude, matching the input record layout.
// Demand is the number of units to deliver; the depot always carries 0.
type Location struct {
	Name   string
	X      float64
	Y      float64
	Demand int
}

func (l Location) Coords() Coordinates {
	return Coordinates{Lon: l.X, Lat: l.Y}
}

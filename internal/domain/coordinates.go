package domain

// Immutable geographic coordinates in floating-point degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether the pair lies inside the geographic domain.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

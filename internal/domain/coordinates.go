package domain

import (
	"encoding/json"
	"fmt"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// IsZero reports whether no coordinates were supplied.
func (c Coordinates) IsZero() bool { return c.Lon == 0 && c.Lat == 0 }

// MarshalJSON encodes coordinates as a GeoJSON-style [lon, lat] pair.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coordinates) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("coordinates: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: expected [lon, lat], got %d values", len(pair))
	}
	c.Lon, c.Lat = pair[0], pair[1]
	return nil
}

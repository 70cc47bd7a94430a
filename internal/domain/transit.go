package domain

import "fmt"

// TransitLeg is a scheduled public-transport segment between two named points.
// Legs are reference data, loaded once and never modified.
type TransitLeg struct {
	RouteName       string `json:"routeName"`
	From            string `json:"from"`
	To              string `json:"to"`
	DepartureTime   string `json:"departureTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Frequency       string `json:"frequency"`
	WalkingDistance string `json:"walkingDistance"`
	Notes           string `json:"notes,omitempty"`
}

func (l TransitLeg) Validate() error {
	if l.From == "" || l.To == "" {
		return fmt.Errorf("transit leg %q: from and to are required", l.RouteName)
	}
	if l.DurationMinutes < 0 {
		return fmt.Errorf("transit leg %q: duration must be >= 0, got %d", l.RouteName, l.DurationMinutes)
	}
	return nil
}

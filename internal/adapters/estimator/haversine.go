package estimator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
)

const earthRadiusKm = 6371.0

var ErrMissingCoordinates = errors.New("location has no coordinates")

// HaversineEstimator estimates road distance as the great-circle distance scaled by a
// detour factor, and duration from an average speed.
type HaversineEstimator struct {
	DetourFactor    float64
	AverageSpeedKmh float64
}

func NewHaversineEstimator() *HaversineEstimator {
	return &HaversineEstimator{DetourFactor: 1.3, AverageSpeedKmh: 40}
}

// GreatCircleKm returns the haversine distance between a and b.
func GreatCircleKm(a, b domain.Coordinates) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func (e *HaversineEstimator) Estimate(_ context.Context, from, to domain.Location) (ports.RouteEstimate, error) {
	if from.Coordinates.IsZero() {
		return ports.RouteEstimate{}, fmt.Errorf("haversine estimate: %q: %w", from.Name, ErrMissingCoordinates)
	}
	if to.Coordinates.IsZero() {
		return ports.RouteEstimate{}, fmt.Errorf("haversine estimate: %q: %w", to.Name, ErrMissingCoordinates)
	}
	if e.AverageSpeedKmh <= 0 {
		return ports.RouteEstimate{}, fmt.Errorf("haversine estimate: average speed must be > 0, got %v", e.AverageSpeedKmh)
	}

	detour := e.DetourFactor
	if detour < 1 {
		detour = 1
	}

	km := GreatCircleKm(from.Coordinates, to.Coordinates) * detour
	return ports.RouteEstimate{
		DurationMinutes: int(math.Round(km / e.AverageSpeedKmh * 60)),
		DistanceKm:      roundKm(km),
	}, nil
}

// roundKm rounds to one decimal place, the precision offers are shown with.
func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

var _ ports.RouteEstimator = (*HaversineEstimator)(nil)

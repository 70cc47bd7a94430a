package ports

import (
	"context"
	"ride-match-service/internal/domain"
)

// Estimated driving distance and duration between two locations.
type RouteEstimate struct {
	DurationMinutes int
	DistanceKm      float64
}

// Contract for estimating a ride's duration and distance when an offer is posted.
// Implementations range from the randomized placeholder to a routing API.
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to domain.Location) (RouteEstimate, error)
}

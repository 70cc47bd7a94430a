package services

import (
	"context"
	"ride-match-service/internal/adapters/catalog"
	"ride-match-service/internal/adapters/repositories"
	"ride-match-service/internal/domain"
	"testing"
)

func loc(name string) domain.Location {
	return domain.Location{Name: name}
}

func offer(id, start, end string, minutes int, cost float64) domain.Offer {
	return domain.Offer{
		ID:                       id,
		DriverName:               "Driver " + id,
		StartLocation:            loc(start),
		EndLocation:              loc(end),
		DepartureTime:            "08:00",
		PassengerCapacity:        4,
		AvailableSeats:           3,
		CostPerSeat:              cost,
		EstimatedDurationMinutes: minutes,
		DistanceKm:               10,
		VehicleType:              "Sedan",
		DriverRating:             4.5,
	}
}

func dubaiOffers() []domain.Offer {
	return []domain.Offer{
		offer("1", "Al Barsha", "Dubai Marina", 25, 10),
		offer("2", "Dubai Mall", "Business Bay", 15, 15),
		offer("3", "Al Barsha", "DIFC", 20, 12),
		offer("4", "Deira", "Palm Jumeirah", 35, 18),
		offer("5", "Dubai Mall", "Dubai Internet City", 22, 20),
	}
}

func dubaiLegs() []domain.TransitLeg {
	return []domain.TransitLeg{
		{RouteName: "Bus 50", From: "Business Bay", To: "Al Quoz", DepartureTime: "8:45 AM", DurationMinutes: 20, Frequency: "Every 30 min", WalkingDistance: "150m"},
		{RouteName: "Red Line Metro", From: "Dubai Mall", To: "Internet City", DepartureTime: "9:10 AM", DurationMinutes: 25, Frequency: "Every 7 min", WalkingDistance: "350m"},
		{RouteName: "Bus 28", From: "Palm Jumeirah", To: "Dubai Marina", DepartureTime: "10:15 AM", DurationMinutes: 15, Frequency: "Every 20 min", WalkingDistance: "200m"},
	}
}

func newRepo(t *testing.T, offers []domain.Offer) *repositories.MemoryOfferRepository {
	t.Helper()

	repo := repositories.NewMemoryOfferRepository(nil)
	if _, err := repo.SeedIfEmpty(context.Background(), offers); err != nil {
		t.Fatalf("seed repository: %v", err)
	}
	return repo
}

func newMatcher(t *testing.T, offers []domain.Offer, legs []domain.TransitLeg) *Matcher {
	t.Helper()
	return NewMatcher(newRepo(t, offers), catalog.NewTransitCatalogue(legs, catalog.StrategyFirst), 0)
}

func ids(offers []domain.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.ID)
	}
	return out
}

package services

import (
	"context"
	"errors"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

// Defaults applied to offers posted by the current user.
const (
	DefaultDriverName   = "You"
	DefaultVehicleType  = "Your Car"
	DefaultDriverRating = 5.0
)

type PostOfferRequest struct {
	DriverName        string
	VehicleType       string
	StartLocation     *domain.Location
	EndLocation       *domain.Location
	DepartureTime     string
	PassengerCapacity int
	CostPerSeat       float64
}

// OfferPoster turns a user submission into a stored offer.
type OfferPoster struct {
	Repo      ports.OfferRepository
	Estimator ports.RouteEstimator
	Emissions domain.EmissionTable
	// NewID defaults to NewOfferID.
	NewID func() string
}

// NewOfferID returns a fresh "user-" prefixed id.
func NewOfferID() string {
	return "user-" + uuid.NewString()
}

func validatePostRequest(req PostOfferRequest) error {
	if req.StartLocation == nil || strings.TrimSpace(req.StartLocation.Name) == "" {
		return fmt.Errorf("%w: start location is required", domain.ErrInvalidOffer)
	}
	if req.EndLocation == nil || strings.TrimSpace(req.EndLocation.Name) == "" {
		return fmt.Errorf("%w: end location is required", domain.ErrInvalidOffer)
	}
	if req.CostPerSeat <= 0 {
		return fmt.Errorf("%w: cost per seat must be > 0, got %v", domain.ErrInvalidOffer, req.CostPerSeat)
	}
	if req.PassengerCapacity <= 0 {
		return fmt.Errorf("%w: passenger capacity must be > 0, got %d", domain.ErrInvalidOffer, req.PassengerCapacity)
	}
	return nil
}

// Post validates req, estimates the route, computes seats and emissions and publishes
// the offer at the head of the store. Invalid input returns domain.ErrInvalidOffer and
// stores nothing.
func (p *OfferPoster) Post(ctx context.Context, req PostOfferRequest) (_ domain.Offer, err error) {
	defer obs.Time(ctx, "offers.Post")(&err)

	if err := validatePostRequest(req); err != nil {
		return domain.Offer{}, fmt.Errorf("post offer: %w", err)
	}

	if p.Repo == nil || p.Estimator == nil {
		return domain.Offer{}, errors.New("post offer: repository and estimator are required")
	}

	est, err := p.Estimator.Estimate(ctx, *req.StartLocation, *req.EndLocation)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("post offer: estimate route %q -> %q: %w",
			req.StartLocation.Name, req.EndLocation.Name, err)
	}

	newID := p.NewID
	if newID == nil {
		newID = NewOfferID
	}

	driver := strings.TrimSpace(req.DriverName)
	if driver == "" {
		driver = DefaultDriverName
	}
	vehicle := strings.TrimSpace(req.VehicleType)
	if vehicle == "" {
		vehicle = DefaultVehicleType
	}

	seats := req.PassengerCapacity
	offer := domain.Offer{
		ID:                       newID(),
		DriverName:               driver,
		StartLocation:            *req.StartLocation,
		EndLocation:              *req.EndLocation,
		DepartureTime:            strings.TrimSpace(req.DepartureTime),
		PassengerCapacity:        req.PassengerCapacity,
		AvailableSeats:           seats,
		CostPerSeat:              req.CostPerSeat,
		EstimatedDurationMinutes: est.DurationMinutes,
		DistanceKm:               est.DistanceKm,
		VehicleType:              vehicle,
		DriverRating:             DefaultDriverRating,
		CO2SavedKg:               p.Emissions.CO2SavedKg(est.DistanceKm, seats, vehicle),
	}

	if err := offer.Validate(); err != nil {
		return domain.Offer{}, fmt.Errorf("post offer: %w", err)
	}

	if err := p.Repo.InsertOffer(ctx, offer); err != nil {
		return domain.Offer{}, fmt.Errorf("post offer: insert: %w", err)
	}

	return offer.Clone(), nil
}

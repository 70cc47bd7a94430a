package domain

import "fmt"

const MaxDriverRating = 5.0

// Offer is a driver-submitted ride.
// Stored offers are never modified; search results carry copies, and only those copies
// may have a TransitContinuation attached.
type Offer struct {
	ID                       string      `json:"id"`
	DriverName               string      `json:"driverName"`
	StartLocation            Location    `json:"startLocation"`
	EndLocation              Location    `json:"endLocation"`
	DepartureTime            string      `json:"departureTime,omitempty"`
	PassengerCapacity        int         `json:"passengerCapacity"`
	AvailableSeats           int         `json:"availableSeats"`
	CostPerSeat              float64     `json:"costPerSeat"`
	EstimatedDurationMinutes int         `json:"estimatedDurationMinutes"`
	DistanceKm               float64     `json:"distanceKm"`
	VehicleType              string      `json:"vehicleType"`
	DriverRating             float64     `json:"driverRating"`
	CO2SavedKg               float64     `json:"co2SavedKg"`
	TransitContinuation      *TransitLeg `json:"transitContinuation,omitempty"`
}

// Clone returns a deep copy; the continuation pointer is never shared.
func (o Offer) Clone() Offer {
	if o.TransitContinuation != nil {
		leg := *o.TransitContinuation
		o.TransitContinuation = &leg
	}
	return o
}

// WithContinuation returns a copy of o annotated with leg.
func (o Offer) WithContinuation(leg TransitLeg) Offer {
	o.TransitContinuation = &leg
	return o
}

// TotalDurationMinutes is the ride duration plus any stitched transit leg.
func (o Offer) TotalDurationMinutes() int {
	total := o.EstimatedDurationMinutes
	if o.TransitContinuation != nil {
		total += o.TransitContinuation.DurationMinutes
	}
	return total
}

// Validate checks the field invariants of a fully built offer.
func (o Offer) Validate() error {
	switch {
	case o.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidOffer)
	case o.StartLocation.Name == "":
		return fmt.Errorf("%w: offer %s: start location is required", ErrInvalidOffer, o.ID)
	case o.EndLocation.Name == "":
		return fmt.Errorf("%w: offer %s: end location is required", ErrInvalidOffer, o.ID)
	case o.PassengerCapacity <= 0:
		return fmt.Errorf("%w: offer %s: passenger capacity must be > 0, got %d", ErrInvalidOffer, o.ID, o.PassengerCapacity)
	case o.AvailableSeats < 0 || o.AvailableSeats > o.PassengerCapacity:
		return fmt.Errorf("%w: offer %s: available seats %d outside 0..%d", ErrInvalidOffer, o.ID, o.AvailableSeats, o.PassengerCapacity)
	case o.CostPerSeat <= 0:
		return fmt.Errorf("%w: offer %s: cost per seat must be > 0, got %v", ErrInvalidOffer, o.ID, o.CostPerSeat)
	case o.EstimatedDurationMinutes < 0:
		return fmt.Errorf("%w: offer %s: duration must be >= 0, got %d", ErrInvalidOffer, o.ID, o.EstimatedDurationMinutes)
	case o.DistanceKm < 0:
		return fmt.Errorf("%w: offer %s: distance must be >= 0, got %v", ErrInvalidOffer, o.ID, o.DistanceKm)
	case o.DriverRating < 0 || o.DriverRating > MaxDriverRating:
		return fmt.Errorf("%w: offer %s: rating %v outside [0,%v]", ErrInvalidOffer, o.ID, o.DriverRating, MaxDriverRating)
	}
	return nil
}

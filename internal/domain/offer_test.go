package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func validOffer() Offer {
	return Offer{
		ID:                       "1",
		DriverName:               "Ahmed",
		StartLocation:            Location{Name: "Al Barsha", Coordinates: Coordinates{Lon: 55.2098, Lat: 25.1112}},
		EndLocation:              Location{Name: "Dubai Marina", Coordinates: Coordinates{Lon: 55.1304, Lat: 25.0750}},
		DepartureTime:            "08:00",
		PassengerCapacity:        4,
		AvailableSeats:           3,
		CostPerSeat:              10,
		EstimatedDurationMinutes: 25,
		DistanceKm:               12.3,
		VehicleType:              "Sedan",
		DriverRating:             4.8,
	}
}

func TestOfferTotalDuration(t *testing.T) {
	o := validOffer()
	if got := o.TotalDurationMinutes(); got != 25 {
		t.Fatalf("total duration = %d, want 25", got)
	}

	annotated := o.WithContinuation(TransitLeg{RouteName: "Bus 28", From: "Dubai Marina", To: "Palm Jumeirah", DurationMinutes: 15})
	if got := annotated.TotalDurationMinutes(); got != 40 {
		t.Fatalf("total duration with transit = %d, want 40", got)
	}
	if o.TransitContinuation != nil {
		t.Fatal("WithContinuation modified the receiver")
	}
}

func TestOfferCloneDoesNotShareContinuation(t *testing.T) {
	o := validOffer().WithContinuation(TransitLeg{RouteName: "Bus 50", From: "A", To: "B", DurationMinutes: 20})

	c := o.Clone()
	c.TransitContinuation.DurationMinutes = 99

	if o.TransitContinuation.DurationMinutes != 20 {
		t.Fatalf("clone shares continuation: original duration = %d", o.TransitContinuation.DurationMinutes)
	}
}

func TestOfferValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Offer)
	}{
		{"missing id", func(o *Offer) { o.ID = "" }},
		{"missing start", func(o *Offer) { o.StartLocation = Location{} }},
		{"missing end", func(o *Offer) { o.EndLocation = Location{} }},
		{"zero capacity", func(o *Offer) { o.PassengerCapacity = 0 }},
		{"seats above capacity", func(o *Offer) { o.AvailableSeats = 5 }},
		{"negative seats", func(o *Offer) { o.AvailableSeats = -1 }},
		{"zero cost", func(o *Offer) { o.CostPerSeat = 0 }},
		{"negative duration", func(o *Offer) { o.EstimatedDurationMinutes = -1 }},
		{"negative distance", func(o *Offer) { o.DistanceKm = -0.5 }},
		{"rating above five", func(o *Offer) { o.DriverRating = 5.1 }},
	}

	if err := validOffer().Validate(); err != nil {
		t.Fatalf("valid offer rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOffer()
			tt.mutate(&o)
			err := o.Validate()
			if !errors.Is(err, ErrInvalidOffer) {
				t.Fatalf("err = %v, want ErrInvalidOffer", err)
			}
		})
	}
}

func TestOfferJSONUsesCoordinatePairs(t *testing.T) {
	b, err := json.Marshal(validOffer().StartLocation)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Al Barsha","coordinates":[55.2098,25.1112]}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}

	var loc Location
	if err := json.Unmarshal([]byte(`{"name":"DIFC","coordinates":[55.284,25.2149]}`), &loc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loc.Coordinates.Lon != 55.284 || loc.Coordinates.Lat != 25.2149 {
		t.Fatalf("coordinates = %+v", loc.Coordinates)
	}

	if err := json.Unmarshal([]byte(`{"name":"DIFC","coordinates":[55.284]}`), &loc); err == nil {
		t.Fatal("expected error for a single coordinate")
	}
}

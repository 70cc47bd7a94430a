package dto

type PostOfferRequest struct {
	DriverName        string           `json:"driver_name"`
	VehicleType       string           `json:"vehicle_type"`
	StartLocation     *LocationRequest `json:"start_location"`
	EndLocation       *LocationRequest `json:"end_location"`
	DepartureTime     string           `json:"departure_time"`
	PassengerCapacity int              `json:"passenger_capacity"`
	CostPerSeat       float64          `json:"cost_per_seat"`
}

type TransitLegResponse struct {
	RouteName       string `json:"route_name"`
	From            string `json:"from"`
	To              string `json:"to"`
	DepartureTime   string `json:"departure_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Frequency       string `json:"frequency"`
	WalkingDistance string `json:"walking_distance"`
	Notes           string `json:"notes,omitempty"`
}

type OfferResponse struct {
	ID                       string              `json:"id"`
	DriverName               string              `json:"driver_name"`
	StartLocation            LocationResponse    `json:"start_location"`
	EndLocation              LocationResponse    `json:"end_location"`
	DepartureTime            string              `json:"departure_time,omitempty"`
	PassengerCapacity        int                 `json:"passenger_capacity"`
	AvailableSeats           int                 `json:"available_seats"`
	CostPerSeat              float64             `json:"cost_per_seat"`
	EstimatedDurationMinutes int                 `json:"estimated_duration_minutes"`
	TotalDurationMinutes     int                 `json:"total_duration_minutes"`
	DistanceKm               float64             `json:"distance_km"`
	VehicleType              string              `json:"vehicle_type"`
	DriverRating             float64             `json:"driver_rating"`
	CO2SavedKg               float64             `json:"co2_saved_kg"`
	TransitContinuation      *TransitLegResponse `json:"transit_continuation,omitempty"`
}

type ListOffersResponse struct {
	Offers []OfferResponse `json:"offers"`
}

type ListTransitResponse struct {
	Legs []TransitLegResponse `json:"legs"`
}

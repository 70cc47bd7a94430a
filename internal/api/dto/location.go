package dto

type LocationRequest struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type LocationResponse struct {
	Name        string     `json:"name"`
	Coordinates [2]float64 `json:"coordinates"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

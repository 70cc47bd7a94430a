package dto

type SearchRequest struct {
	StartLocation  *LocationRequest `json:"start_location"`
	EndLocation    *LocationRequest `json:"end_location"`
	Sort           string           `json:"sort"`
	PassengerCount int              `json:"passenger_count"`
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"ride-match-service/internal/api/dto"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"strings"
)

// Request bodies larger than this are rejected.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("empty body")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to 400 and hides anything else behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, domain.ErrInvalidOffer) || errors.Is(err, domain.ErrInvalidQuery) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("%s failed: req_id=%s err=%v", op, obs.RequestID(r.Context()), err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads exactly one JSON object from the request body. An empty body
// returns errEmptyBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errEmptyBody
		}
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// toLocation converts a request location. A missing location or blank name means
// "any" and yields nil.
func toLocation(in *dto.LocationRequest) (*domain.Location, error) {
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return nil, nil
	}

	loc := &domain.Location{Name: strings.TrimSpace(in.Name)}
	switch len(in.Coordinates) {
	case 0:
	case 2:
		loc.Coordinates = domain.Coordinates{Lon: in.Coordinates[0], Lat: in.Coordinates[1]}
	default:
		return nil, fmt.Errorf("location %q: coordinates must be [lon, lat]", loc.Name)
	}
	return loc, nil
}

func toLocationResponse(l domain.Location) dto.LocationResponse {
	return dto.LocationResponse{Name: l.Name, Coordinates: [2]float64{l.Coordinates.Lon, l.Coordinates.Lat}}
}

func toTransitLegResponse(l domain.TransitLeg) dto.TransitLegResponse {
	return dto.TransitLegResponse{
		RouteName:       l.RouteName,
		From:            l.From,
		To:              l.To,
		DepartureTime:   l.DepartureTime,
		DurationMinutes: l.DurationMinutes,
		Frequency:       l.Frequency,
		WalkingDistance: l.WalkingDistance,
		Notes:           l.Notes,
	}
}

func toOfferResponse(o domain.Offer) dto.OfferResponse {
	res := dto.OfferResponse{
		ID:                       o.ID,
		DriverName:               o.DriverName,
		StartLocation:            toLocationResponse(o.StartLocation),
		EndLocation:              toLocationResponse(o.EndLocation),
		DepartureTime:            o.DepartureTime,
		PassengerCapacity:        o.PassengerCapacity,
		AvailableSeats:           o.AvailableSeats,
		CostPerSeat:              o.CostPerSeat,
		EstimatedDurationMinutes: o.EstimatedDurationMinutes,
		TotalDurationMinutes:     o.TotalDurationMinutes(),
		DistanceKm:               o.DistanceKm,
		VehicleType:              o.VehicleType,
		DriverRating:             o.DriverRating,
		CO2SavedKg:               o.CO2SavedKg,
	}
	if o.TransitContinuation != nil {
		leg := toTransitLegResponse(*o.TransitContinuation)
		res.TransitContinuation = &leg
	}
	return res
}

func toListOffersResponse(offers []domain.Offer) dto.ListOffersResponse {
	res := dto.ListOffersResponse{Offers: make([]dto.OfferResponse, 0, len(offers))}
	for _, o := range offers {
		res.Offers = append(res.Offers, toOfferResponse(o))
	}
	return res
}

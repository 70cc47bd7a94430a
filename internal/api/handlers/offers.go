package handlers

import (
	"errors"
	"log"
	"net/http"
	"ride-match-service/internal/api/dto"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"ride-match-service/internal/services"
)

// OfferHandler lists stored offers and accepts new ones.
type OfferHandler struct {
	Repo     ports.OfferRepository
	Poster   *services.OfferPoster
	Registry ports.LocationRegistry
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Repo.ListOffers(r.Context())
	if err != nil {
		log.Printf("list offers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toListOffersResponse(offers))
}

// Create posts a new offer. Locations are replaced by the registry entry they name,
// when there is one, so stored offers carry canonical names and coordinates.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PostOfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errEmptyBody) {
			writeError(w, r, http.StatusBadRequest, "request body is required")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start, err := toLocation(req.StartLocation)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := toLocation(req.EndLocation)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	offer, err := h.Poster.Post(r.Context(), services.PostOfferRequest{
		DriverName:        req.DriverName,
		VehicleType:       req.VehicleType,
		StartLocation:     h.canonical(start),
		EndLocation:       h.canonical(end),
		DepartureTime:     req.DepartureTime,
		PassengerCapacity: req.PassengerCapacity,
		CostPerSeat:       req.CostPerSeat,
	})
	if err != nil {
		writeServiceError(w, r, "post offer", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toOfferResponse(offer))
}

func (h *OfferHandler) canonical(loc *domain.Location) *domain.Location {
	if loc == nil || h.Registry == nil {
		return loc
	}
	if found, ok := h.Registry.FindByName(loc.Name); ok {
		return &found
	}
	return loc
}

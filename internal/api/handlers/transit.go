package handlers

import (
	"net/http"
	"ride-match-service/internal/api/dto"
	"ride-match-service/internal/ports"
)

type TransitHandler struct {
	Transit ports.TransitCatalogue
}

func (h *TransitHandler) List(w http.ResponseWriter, r *http.Request) {
	legs := h.Transit.Legs()

	res := dto.ListTransitResponse{Legs: make([]dto.TransitLegResponse, 0, len(legs))}
	for _, l := range legs {
		res.Legs = append(res.Legs, toTransitLegResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

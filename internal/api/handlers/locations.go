package handlers

import (
	"net/http"
	"ride-match-service/internal/api/dto"
	"ride-match-service/internal/ports"
	"strings"
)

type LocationHandler struct {
	Registry ports.LocationRegistry
}

// List returns every known location, or the single best match for ?q=.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		loc, ok := h.Registry.FindByName(q)
		if !ok {
			writeError(w, r, http.StatusNotFound, "location not found")
			return
		}
		writeJSON(w, r, http.StatusOK, toLocationResponse(loc))
		return
	}

	all := h.Registry.Locations()
	res := dto.ListLocationsResponse{Locations: make([]dto.LocationResponse, 0, len(all))}
	for _, l := range all {
		res.Locations = append(res.Locations, toLocationResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

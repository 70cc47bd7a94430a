package handlers

import (
	"errors"
	"net/http"
	"ride-match-service/internal/api/dto"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
)

type SearchHandler struct {
	Searcher ports.OfferSearcher
	Registry ports.LocationRegistry
}

// Search runs a ride search. An empty body searches with no filters.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sort, err := domain.ParseSortPreference(req.Sort)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	origin, err := toLocation(req.StartLocation)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	destination, err := toLocation(req.EndLocation)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := domain.Query{
		Origin:         h.withCoordinates(origin),
		Destination:    h.withCoordinates(destination),
		Sort:           sort,
		PassengerCount: req.PassengerCount,
	}

	offers, err := h.Searcher.Search(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, "search offers", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toListOffersResponse(offers))
}

// withCoordinates fills coordinates from the registry on an exact name match. The
// name stays as typed because partial names are valid search terms.
func (h *SearchHandler) withCoordinates(loc *domain.Location) *domain.Location {
	if loc == nil || h.Registry == nil || !loc.Coordinates.IsZero() {
		return loc
	}
	if found, ok := h.Registry.FindByName(loc.Name); ok && found.Name == loc.Name {
		loc.Coordinates = found.Coordinates
	}
	return loc
}

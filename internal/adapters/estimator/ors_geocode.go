package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocode resolves a place name using OpenRouteService (/geocode/search), restricted
// to the configured country.
func (o *ORSEstimator) geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocode")(&err)

	endpoint := o.baseURL + "/geocode/search"

	body, err := o.call(ctx, orsCall{
		op:       "geocode",
		method:   http.MethodGet,
		endpoint: endpoint,
		query: url.Values{
			"text":             {place},
			"boundary.country": {o.country},
			"size":             {"1"},
		},
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", place)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", place)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}

package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"ride-match-service/internal/adapters/cache"
	"ride-match-service/internal/domain"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchRoute asks the OpenRouteService matrix endpoint for the driving distance and
// duration of a single origin -> destination pair.
func (o *ORSEstimator) fetchRoute(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (cache.RouteMetrics, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	bodyObj := matrixRequest{
		Locations:    [][]float64{from.CoordsToList(), to.CoordsToList()},
		Destinations: []int{1},
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return cache.RouteMetrics{}, fmt.Errorf("marshal matrix request: %w", err)
	}

	body, err := o.call(ctx, orsCall{
		op:       "matrix",
		method:   http.MethodPost,
		endpoint: endpoint,
		payload:  payload,
	})
	if err != nil {
		return cache.RouteMetrics{}, fmt.Errorf("matrix request failed: %w", err)
	}

	var mr matrixResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return cache.RouteMetrics{}, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return cache.RouteMetrics{}, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}
	if len(mr.Distances[0]) != 1 || len(mr.Durations[0]) != 1 {
		return cache.RouteMetrics{}, fmt.Errorf(
			"expected 1 destination; got distances=%d durations=%d",
			len(mr.Distances[0]), len(mr.Durations[0]),
		)
	}

	metersPtr := mr.Distances[0][0]
	secondsPtr := mr.Durations[0][0]
	if metersPtr == nil || secondsPtr == nil {
		return cache.RouteMetrics{}, fmt.Errorf("matrix returned no route between the two points")
	}

	// ORS returns float metrics; round to whole meters and seconds.
	return cache.RouteMetrics{
		DistanceMeters:  int(math.Round(*metersPtr)),
		DurationSeconds: int(math.Round(*secondsPtr)),
	}, nil
}

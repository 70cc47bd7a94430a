package estimator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"ride-match-service/internal/adapters/cache"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"
	"strings"
	"time"
)

// ORSEstimator implements RouteEstimator using OpenRouteService.
//
// Locations without coordinates are geocoded first. Both geocodes and routes are
// cached in SQL when caches are configured. When the service fails and a fallback
// estimator is set, the fallback answers instead.
//
// The estimator is safe for concurrent use.
type ORSEstimator struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	country      string
	maxAttempts  int
	backoff      time.Duration
	routeCache   *cache.SQLRouteCache
	geocodeCache *cache.SQLGeocodeCache
	fallback     ports.RouteEstimator
}

type ORSOption func(*ORSEstimator)

// WithBaseURL points the estimator at another ORS deployment (or a test server).
func WithBaseURL(url string) ORSOption {
	return func(o *ORSEstimator) { o.baseURL = strings.TrimRight(url, "/") }
}

func WithRetry(maxAttempts int, backoff time.Duration) ORSOption {
	return func(o *ORSEstimator) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.backoff = backoff
	}
}

func WithCaches(routes *cache.SQLRouteCache, geocodes *cache.SQLGeocodeCache) ORSOption {
	return func(o *ORSEstimator) {
		o.routeCache = routes
		o.geocodeCache = geocodes
	}
}

func WithFallback(fallback ports.RouteEstimator) ORSOption {
	return func(o *ORSEstimator) { o.fallback = fallback }
}

func NewORSEstimator(apiKey string, opts ...ORSOption) (*ORSEstimator, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSEstimator{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		profile:     "driving-car",
		country:     "AE",
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (o *ORSEstimator) Estimate(ctx context.Context, from, to domain.Location) (_ ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "ors.Estimate")(&err)

	est, err := o.estimate(ctx, from, to)
	if err == nil {
		return est, nil
	}
	if o.fallback == nil || ctx.Err() != nil {
		return ports.RouteEstimate{}, err
	}

	log.Printf("ORS estimate failed, using fallback from=%q to=%q err=%v", from.Name, to.Name, err)
	return o.fallback.Estimate(ctx, from, to)
}

func (o *ORSEstimator) estimate(ctx context.Context, from, to domain.Location) (ports.RouteEstimate, error) {
	origin := normalize(from.Name)
	destination := normalize(to.Name)
	if origin == "" || destination == "" {
		return ports.RouteEstimate{}, errors.New("get ORS route: origin and destination must be non-empty")
	}

	if origin == destination {
		return ports.RouteEstimate{}, nil
	}

	// Check persistent route cache before issuing external API calls.
	if o.routeCache != nil {
		m, ok, err := o.routeCache.Get(ctx, origin, destination)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return toEstimate(m), nil
		}
	}

	fromCoord, err := o.coordinates(ctx, origin, from.Coordinates)
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("retrieving coordinates for %q: %w", origin, err)
	}
	toCoord, err := o.coordinates(ctx, destination, to.Coordinates)
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("retrieving coordinates for %q: %w", destination, err)
	}

	m, err := o.fetchRoute(ctx, fromCoord, toCoord)
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("fetching route %q -> %q: %w", origin, destination, err)
	}

	if o.routeCache != nil {
		if err := o.routeCache.Put(ctx, origin, destination, m); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return toEstimate(m), nil
}

// coordinates prefers known coordinates, then the geocode cache, then the geocoder.
func (o *ORSEstimator) coordinates(ctx context.Context, place string, known domain.Coordinates) (domain.Coordinates, error) {
	if !known.IsZero() {
		return known, nil
	}

	if o.geocodeCache != nil {
		c, ok, err := o.geocodeCache.Get(ctx, place)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if ok {
			return c, nil
		}
	}

	c, err := o.geocode(ctx, place)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.Put(ctx, place, c); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return c, nil
}

func toEstimate(m cache.RouteMetrics) ports.RouteEstimate {
	return ports.RouteEstimate{
		DurationMinutes: int(math.Round(float64(m.DurationSeconds) / 60)),
		DistanceKm:      roundKm(float64(m.DistanceMeters) / 1000),
	}
}

var _ ports.RouteEstimator = (*ORSEstimator)(nil)

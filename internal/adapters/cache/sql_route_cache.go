package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-match-service/internal/platform/db"
	"ride-match-service/internal/platform/obs"
	"strings"
)

// RouteMetrics is a cached driving distance and duration between two places.
type RouteMetrics struct {
	DistanceMeters  int
	DurationSeconds int
}

// SQLRouteCache is a SQL-backed cache for origin->destination route metrics.
// Keys are expected to be normalized by the caller.
type SQLRouteCache struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLRouteCache(conn *sql.DB, dialect db.Dialect) *SQLRouteCache {
	return &SQLRouteCache{DB: conn, Dialect: dialect}
}

// Get returns the cached metrics for origin -> destination; ok is false on a miss.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ RouteMetrics, ok bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return RouteMetrics{}, false, errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return RouteMetrics{}, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := s.Dialect.Rebind(`
	SELECT distance_meters, duration_seconds
    FROM route_cache
    WHERE origin = ?
        AND destination = ?;
	`)

	var m RouteMetrics
	err = s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&m.DistanceMeters, &m.DurationSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return RouteMetrics{}, false, nil
	}
	if err != nil {
		return RouteMetrics{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return m, true, nil
}

// Put stores or replaces the metrics for origin -> destination.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	m RouteMetrics,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	q := s.Dialect.Rebind(`
	INSERT INTO route_cache (origin, destination, distance_meters, duration_seconds)
    VALUES (?, ?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, m.DistanceMeters, m.DurationSeconds); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}

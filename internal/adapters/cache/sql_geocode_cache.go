package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/db"
	"ride-match-service/internal/platform/obs"
	"strings"
)

// SQLGeocodeCache is a SQL-backed cache mapping place names to coordinates.
type SQLGeocodeCache struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLGeocodeCache(conn *sql.DB, dialect db.Dialect) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: conn, Dialect: dialect}
}

// Get returns cached coordinates for address; ok is false on a miss.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, ok bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, errors.New("get geocode cache: address must not be empty")
	}

	q := s.Dialect.Rebind(`
	SELECT lon, lat
    FROM geocode_cache
    WHERE address = ?;
	`)

	var c domain.Coordinates
	err = s.DB.QueryRowContext(ctx, q, address).Scan(&c.Lon, &c.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Put stores or replaces the coordinates for address.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := s.Dialect.Rebind(`
	INSERT INTO geocode_cache (address, lon, lat)
    VALUES (?, ?, ?)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`)

	if _, err := s.DB.ExecContext(ctx, q, address, c.Lon, c.Lat); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}

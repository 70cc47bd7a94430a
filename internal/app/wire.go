package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"ride-match-service/internal/adapters/cache"
	"ride-match-service/internal/adapters/catalog"
	"ride-match-service/internal/adapters/estimator"
	"ride-match-service/internal/adapters/repositories"
	"ride-match-service/internal/api"
	"ride-match-service/internal/config"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/db"
	"ride-match-service/internal/ports"
	"ride-match-service/internal/services"
)

// Wire bundles the stores, catalogues and services shared by the server and the CLI.
type Wire struct {
	Offers   *repositories.MemoryOfferRepository
	Searcher ports.OfferSearcher
	Poster   *services.OfferPoster
	Registry *catalog.LocationRegistry
	Transit  *catalog.TransitCatalogue

	backend     *Backend
	corsOrigins []string
	extra       []func() error
}

// NewWire constructs the dependency graph from cfg. Snapshot read failures degrade to
// an empty store; seed and configuration errors are fatal.
func NewWire(ctx context.Context, cfg config.Config) (*Wire, error) {
	seeds, err := repositories.ReadSeeds(cfg.SeedDir)
	if err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}

	strategy, err := catalog.ParseStrategy(cfg.TransitStrategy)
	if err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("wire: %w", err)
	}

	w := &Wire{backend: backend, corsOrigins: cfg.CORSOrigins}

	repo := repositories.NewMemoryOfferRepository(backend.Store)
	if err := repo.Load(ctx); err != nil {
		log.Printf("offer snapshot unavailable, starting empty: %v", err)
	}
	if _, err := repo.SeedIfEmpty(ctx, seeds.Offers); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("wire: %w", err)
	}

	legs, err := repositories.LoadTransit(ctx, backend.Store, seeds.Transit)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("wire: %w", err)
	}

	est, err := w.newEstimator(cfg)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("wire: %w", err)
	}

	w.Offers = repo
	w.Registry = catalog.NewLocationRegistry(seeds.Locations)
	w.Transit = catalog.NewTransitCatalogue(legs, strategy)

	matcher := services.NewMatcher(repo, w.Transit, cfg.IndirectThreshold)
	w.Searcher = matcher
	if cfg.SearchCacheTTL > 0 {
		w.Searcher = cache.NewSearchCache(matcher, repo, cfg.SearchCacheTTL)
	}

	w.Poster = &services.OfferPoster{
		Repo:      repo,
		Estimator: est,
		Emissions: domain.NewEmissionTable(cfg.DefaultEmissionFactor, cfg.EmissionFactors),
	}

	log.Printf("wired backend=%s estimator=%s transit_strategy=%s offers_version=%d legs=%d locations=%d",
		cfg.SnapshotBackend, cfg.RouteEstimator, strategy, repo.Version(), len(legs), len(seeds.Locations))

	return w, nil
}

func (w *Wire) newEstimator(cfg config.Config) (ports.RouteEstimator, error) {
	switch cfg.RouteEstimator {
	case "", "random":
		return estimator.NewRandomEstimator(), nil

	case "haversine":
		return estimator.NewHaversineEstimator(), nil

	case "ors":
		routes, geocodes, err := w.routeCaches(cfg)
		if err != nil {
			return nil, err
		}
		ors, err := estimator.NewORSEstimator(cfg.ORSAPIKey,
			estimator.WithCaches(routes, geocodes),
			estimator.WithFallback(estimator.NewRandomEstimator()),
		)
		if err != nil {
			return nil, err
		}
		return ors, nil

	default:
		return nil, fmt.Errorf("unknown ROUTE_ESTIMATOR %q", cfg.RouteEstimator)
	}
}

// routeCaches reuses the snapshot database when there is one, otherwise it opens the
// SQLite file at cfg.DBPath for caching only.
func (w *Wire) routeCaches(cfg config.Config) (*cache.SQLRouteCache, *cache.SQLGeocodeCache, error) {
	conn, dialect := w.backend.DB, w.backend.Dialect
	if conn == nil {
		var err error
		conn, err = openCacheDB(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		dialect = db.SQLite
		w.extra = append(w.extra, conn.Close)
	}

	return cache.NewSQLRouteCache(conn, dialect), cache.NewSQLGeocodeCache(conn, dialect), nil
}

func openCacheDB(path string) (*sql.DB, error) {
	conn, err := db.OpenSQLite(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("route cache: %w", err)
	}
	if err := repositories.InitSchema(conn, db.SQLite); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("route cache: %w", err)
	}
	return conn, nil
}

// Router returns the HTTP API over this wire.
func (w *Wire) Router() http.Handler {
	return api.NewRouter(api.Deps{
		Offers:      w.Offers,
		Searcher:    w.Searcher,
		Poster:      w.Poster,
		Registry:    w.Registry,
		Transit:     w.Transit,
		CORSOrigins: w.corsOrigins,
	})
}

func (w *Wire) Close() error {
	for i := len(w.extra) - 1; i >= 0; i-- {
		_ = w.extra[i]()
	}
	w.extra = nil
	return w.backend.Close()
}

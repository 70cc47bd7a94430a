package app

import (
	"net/http"
	"os"
	"path/filepath"
	"net/http/httptest"
	"ride-match-service/internal/adapters/cache"
	"ride-match-service/internal/config"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/services"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		SnapshotBackend:       backend,
		SnapshotDir:           dir,
		DBPath:                dir + "/app.db",
		SnapshotPrefix:        "dubaiRideShare",
		SeedDir:               "../../data/seeds",
		RouteEstimator:        "random",
		TransitStrategy:       "first",
		IndirectThreshold:     2,
		DefaultEmissionFactor: 180,
		SearchCacheTTL:        time.Minute,
		CORSOrigins:           []string{"*"},
	}
}

func TestNewWireMemoryBackend(t *testing.T) {
	w, err := NewWire(t.Context(), testConfig(t, "memory"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	offers, err := w.Offers.ListOffers(t.Context())
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 5 {
		t.Fatalf("expected 5 seeded offers, got %d", len(offers))
	}
	if len(w.Transit.Legs()) != 3 {
		t.Fatalf("expected 3 transit legs, got %d", len(w.Transit.Legs()))
	}
	if len(w.Registry.Locations()) != 12 {
		t.Fatalf("expected 12 locations, got %d", len(w.Registry.Locations()))
	}
	if _, ok := w.Searcher.(*cache.SearchCache); !ok {
		t.Fatalf("expected search cache with positive ttl, got %T", w.Searcher)
	}

	got, err := w.Searcher.Search(t.Context(), domain.Query{
		Origin:      &domain.Location{Name: "Dubai Mall"},
		Destination: &domain.Location{Name: "Al Quoz"},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].TransitContinuation == nil {
		t.Fatalf("expected one connected result, got %+v", got)
	}
}

func TestNewWireWithoutSearchCache(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.SearchCacheTTL = 0

	w, err := NewWire(t.Context(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if _, ok := w.Searcher.(*services.Matcher); !ok {
		t.Fatalf("expected bare matcher, got %T", w.Searcher)
	}
}

func TestNewWireFileBackendPersistsPostedOffers(t *testing.T) {
	cfg := testConfig(t, "file")

	w, err := NewWire(t.Context(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	posted, err := w.Poster.Post(t.Context(), services.PostOfferRequest{
		StartLocation:     &domain.Location{Name: "Al Barsha"},
		EndLocation:       &domain.Location{Name: "DIFC"},
		PassengerCapacity: 3,
		CostPerSeat:       20,
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewWire(t.Context(), cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	offers, err := reopened.Offers.ListOffers(t.Context())
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 6 {
		t.Fatalf("expected 6 offers after restart, got %d", len(offers))
	}
	if offers[0].ID != posted.ID {
		t.Fatalf("expected posted offer first, got %q", offers[0].ID)
	}
}

func TestNewWireSQLiteBackend(t *testing.T) {
	w, err := NewWire(t.Context(), testConfig(t, "sqlite"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if w.Offers.Version() == 0 {
		t.Fatal("expected seeding to bump the store version")
	}
}

func TestNewWireRejectsBadConfig(t *testing.T) {
	cases := map[string]func(*config.Config){
		"unknown backend":   func(c *config.Config) { c.SnapshotBackend = "tape" },
		"postgres no url":   func(c *config.Config) { c.SnapshotBackend = "postgres" },
		"unknown estimator": func(c *config.Config) { c.RouteEstimator = "crow" },
		"ors without key":   func(c *config.Config) { c.RouteEstimator = "ors" },
		"unknown strategy":  func(c *config.Config) { c.TransitStrategy = "scenic" },
		"missing seeds":     func(c *config.Config) { c.SeedDir = "does-not-exist" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t, "memory")
			mutate(&cfg)
			if w, err := NewWire(t.Context(), cfg); err == nil {
				w.Close()
				t.Fatal("expected error")
			}
		})
	}
}

func TestWireRouterServesHealth(t *testing.T) {
	w, err := NewWire(t.Context(), testConfig(t, "memory"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	rr := httptest.NewRecorder()
	w.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ok") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestNewWireRecoversFromCorruptSnapshots(t *testing.T) {
	cfg := testConfig(t, "file")
	cfg.SnapshotPrefix = "rides"

	for _, key := range []string{"offers", "transit"} {
		path := filepath.Join(cfg.SnapshotDir, "rides_"+key+".json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	w, err := NewWire(t.Context(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	offers, err := w.Offers.ListOffers(t.Context())
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 5 {
		t.Fatalf("expected 5 seeded offers, got %d", len(offers))
	}
	if len(w.Transit.Legs()) != 3 {
		t.Fatalf("expected 3 seed transit legs, got %d", len(w.Transit.Legs()))
	}
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime wiring options shared by the server, dbtool and ridectl binaries.
type Config struct {
	Port string

	// Snapshot persistence: file, sqlite, postgres, redis or memory.
	SnapshotBackend string
	SnapshotDir     string
	DBPath          string
	DatabaseURL     string
	RedisAddr       string

	// SnapshotPrefix namespaces snapshot file names and Redis keys.
	SnapshotPrefix string

	SeedDir string

	// Route estimation for posted offers: random, haversine or ors.
	RouteEstimator string
	ORSAPIKey      string

	TransitStrategy   string
	IndirectThreshold int

	DefaultEmissionFactor float64
	EmissionFactors       map[string]float64

	SearchCacheTTL time.Duration
	CORSOrigins    []string
}

// Load reads .env when present and builds a Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	factors, err := ParseEmissionFactors(Get("EMISSION_FACTORS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		Port:                  Get("PORT", "8080"),
		SnapshotBackend:       strings.ToLower(Get("SNAPSHOT_BACKEND", "file")),
		SnapshotDir:           Get("SNAPSHOT_DIR", "data/snapshots"),
		DBPath:                Get("DB_PATH", "data/app.db"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             Get("REDIS_ADDR", "localhost:6379"),
		SnapshotPrefix:        Get("SNAPSHOT_PREFIX", Get("REDIS_PREFIX", "dubaiRideShare")),
		SeedDir:               Get("SEED_DIR", "data/seeds"),
		RouteEstimator:        strings.ToLower(Get("ROUTE_ESTIMATOR", "random")),
		ORSAPIKey:             os.Getenv("ORS_API_KEY"),
		TransitStrategy:       strings.ToLower(Get("TRANSIT_STRATEGY", "first")),
		IndirectThreshold:     GetInt("INDIRECT_THRESHOLD", 2),
		DefaultEmissionFactor: GetFloat("DEFAULT_EMISSION_FACTOR", 180),
		EmissionFactors:       factors,
		SearchCacheTTL:        GetDuration("SEARCH_CACHE_TTL", 30*time.Second),
		CORSOrigins:           GetList("CORS_ORIGINS", []string{"*"}),
	}

	if cfg.IndirectThreshold < 1 {
		return Config{}, fmt.Errorf("load config: INDIRECT_THRESHOLD must be >= 1, got %d", cfg.IndirectThreshold)
	}
	if cfg.DefaultEmissionFactor <= 0 {
		return Config{}, fmt.Errorf("load config: DEFAULT_EMISSION_FACTOR must be > 0, got %v", cfg.DefaultEmissionFactor)
	}

	return cfg, nil
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("config: ignoring invalid int key=%s value=%q", key, v)
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("config: ignoring invalid float key=%s value=%q", key, v)
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("config: ignoring invalid bool key=%s value=%q", key, v)
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("config: ignoring invalid duration key=%s value=%q", key, v)
	}
	return fallback
}

// GetList splits a comma separated value, dropping empty items.
func GetList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}

	out := make([]string, 0)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// ParseEmissionFactors parses "SUV=230,Van=250" into grams of CO2 per km by vehicle type.
func ParseEmissionFactors(raw string) (map[string]float64, error) {
	out := make(map[string]float64)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		vehicle, value, ok := strings.Cut(pair, "=")
		vehicle = strings.TrimSpace(vehicle)
		if !ok || vehicle == "" {
			return nil, fmt.Errorf("parse emission factors: malformed entry %q", pair)
		}

		factor, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("parse emission factors: vehicle %q: %w", vehicle, err)
		}
		if factor < 0 {
			return nil, fmt.Errorf("parse emission factors: vehicle %q: factor must be >= 0", vehicle)
		}
		out[vehicle] = factor
	}

	return out, nil
}

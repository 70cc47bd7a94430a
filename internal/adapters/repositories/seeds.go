package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"strings"
)

// Seed file names inside the seed directory.
const (
	OffersSeedFile    = "offers.json"
	TransitSeedFile   = "transit.json"
	LocationsSeedFile = "locations.json"
)

func readSeedFile[T any](path, what string) ([]T, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed %s: read %q: %w", what, path, err)
	}

	var data []T
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed %s: parse json: %w", what, err)
	}
	return data, nil
}

// ReadOfferSeeds loads and validates the seed offers. Seed offers never carry a
// transit continuation.
func ReadOfferSeeds(path string) ([]domain.Offer, error) {
	data, err := readSeedFile[domain.Offer](path, "offers")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(data))
	rows := make([]domain.Offer, 0, len(data))
	for i, o := range data {
		o.ID = strings.TrimSpace(o.ID)
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("seed offers: item at index %d: %w", i+1, err)
		}
		if o.TransitContinuation != nil {
			return nil, fmt.Errorf("seed offers: item at index %d: stored offers cannot carry a transit continuation", i+1)
		}
		if _, ok := seen[o.ID]; ok {
			return nil, fmt.Errorf("seed offers: duplicate id %q at index %d", o.ID, i+1)
		}
		seen[o.ID] = struct{}{}
		rows = append(rows, o)
	}
	return rows, nil
}

func ReadTransitSeeds(path string) ([]domain.TransitLeg, error) {
	data, err := readSeedFile[domain.TransitLeg](path, "transit")
	if err != nil {
		return nil, err
	}

	for i, leg := range data {
		if err := leg.Validate(); err != nil {
			return nil, fmt.Errorf("seed transit: item at index %d: %w", i+1, err)
		}
	}
	return data, nil
}

func ReadLocationSeeds(path string) ([]domain.Location, error) {
	data, err := readSeedFile[domain.Location](path, "locations")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(data))
	for i, l := range data {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return nil, fmt.Errorf("seed locations: item at index %d: name cannot be empty", i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("seed locations: duplicate name %q at index %d", name, i+1)
		}
		seen[name] = struct{}{}
		data[i].Name = name
	}
	return data, nil
}

// Seeds bundles the reference and starting data read from a seed directory.
type Seeds struct {
	Locations []domain.Location
	Transit   []domain.TransitLeg
	Offers    []domain.Offer
}

func ReadSeeds(dir string) (Seeds, error) {
	locations, err := ReadLocationSeeds(filepath.Join(dir, LocationsSeedFile))
	if err != nil {
		return Seeds{}, err
	}
	transit, err := ReadTransitSeeds(filepath.Join(dir, TransitSeedFile))
	if err != nil {
		return Seeds{}, err
	}
	offers, err := ReadOfferSeeds(filepath.Join(dir, OffersSeedFile))
	if err != nil {
		return Seeds{}, err
	}
	return Seeds{Locations: locations, Transit: transit, Offers: offers}, nil
}

// LoadTransit returns the transit legs saved in store. When no snapshot exists, or the
// saved one cannot be decoded, the seed legs are saved and returned. A store that cannot
// be read degrades to the seeds.
func LoadTransit(ctx context.Context, store ports.SnapshotStore, seed []domain.TransitLeg) ([]domain.TransitLeg, error) {
	if store == nil {
		return seed, nil
	}

	blob, err := store.Load(ctx, TransitSnapshotKey)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		if err := SaveTransit(ctx, store, seed); err != nil {
			log.Printf("transit snapshot write failed: %v", err)
		}
		return seed, nil
	case err != nil:
		log.Printf("transit snapshot read failed, using seed legs: %v", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err))
		return seed, nil
	}

	legs, err := decodeTransit(blob)
	if err != nil {
		log.Printf("transit snapshot unusable, restoring seed legs: %v", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err))
		if err := SaveTransit(ctx, store, seed); err != nil {
			log.Printf("transit snapshot write failed: %v", err)
		}
		return seed, nil
	}
	return legs, nil
}

func decodeTransit(blob []byte) ([]domain.TransitLeg, error) {
	var legs []domain.TransitLeg
	if err := json.Unmarshal(blob, &legs); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for i, leg := range legs {
		if err := leg.Validate(); err != nil {
			return nil, fmt.Errorf("item at index %d: %w", i+1, err)
		}
	}
	return legs, nil
}

func SaveTransit(ctx context.Context, store ports.SnapshotStore, legs []domain.TransitLeg) error {
	if legs == nil {
		legs = []domain.TransitLeg{}
	}
	blob, err := json.Marshal(legs)
	if err != nil {
		return fmt.Errorf("save transit: encode: %w", err)
	}
	if err := store.Save(ctx, TransitSnapshotKey, blob); err != nil {
		return fmt.Errorf("save transit: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

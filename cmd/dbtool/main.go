package main

import (
	"context"
	"fmt"
	"log"
	"ride-match-service/internal/adapters/repositories"
	"ride-match-service/internal/app"
	"ride-match-service/internal/config"
)

// dbtool prepares the configured snapshot backend: SQL backends get their schema and
// every backend gets the seed offers and transit legs when it holds none.
// DBTOOL_RESET=true overwrites existing snapshots with the seeds.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	reset := config.GetBool("DBTOOL_RESET", false)

	ctx := context.Background()

	log.Printf("Opening snapshot backend=%s...", cfg.SnapshotBackend)
	backend, err := app.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()
	if backend.DB != nil {
		log.Println("Schema ready.")
	}

	if err := seed(ctx, backend, cfg.SeedDir, reset); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func seed(ctx context.Context, backend *app.Backend, seedDir string, reset bool) error {
	seeds, err := repositories.ReadSeeds(seedDir)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	repo := repositories.NewMemoryOfferRepository(backend.Store)
	if reset {
		log.Println("Resetting snapshots to seed data...")
		if err := repositories.SaveTransit(ctx, backend.Store, seeds.Transit); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	} else {
		if err := repo.Load(ctx); err != nil {
			log.Printf("offer snapshot unusable, reseeding: %v", err)
		}
		if _, err := repositories.LoadTransit(ctx, backend.Store, seeds.Transit); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	seeded, err := repo.SeedIfEmpty(ctx, seeds.Offers)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	// Snapshot writes are best effort inside the repository; confirm one landed.
	if _, err := backend.Store.Load(ctx, repositories.OffersSnapshotKey); err != nil {
		return fmt.Errorf("seed: verify offers snapshot: %w", err)
	}
	log.Printf("offers seeded=%t version=%d transit_legs=%d", seeded, repo.Version(), len(seeds.Transit))
	return nil
}

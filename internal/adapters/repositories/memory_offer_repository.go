package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"
	"sync"
)

// Snapshot keys, named after the browser storage keys of the first version of the app.
const (
	OffersSnapshotKey  = "offers"
	TransitSnapshotKey = "transit"
)

// MemoryOfferRepository holds the offer list in memory and writes a snapshot of it
// after every insert. Newest offers come first.
//
// Inserts are serialized, reads run concurrently, and an offer is fully built before
// it becomes visible. Snapshot failures are logged and never fail the insert.
type MemoryOfferRepository struct {
	mu      sync.RWMutex
	offers  []domain.Offer
	version uint64
	seeded  bool

	persistMu sync.Mutex
	persisted uint64
	store     ports.SnapshotStore
}

// NewMemoryOfferRepository returns an empty repository. store may be nil, in which
// case nothing is persisted.
func NewMemoryOfferRepository(store ports.SnapshotStore) *MemoryOfferRepository {
	return &MemoryOfferRepository{store: store}
}

// Load replaces the contents with the saved snapshot. A missing snapshot leaves the
// repository empty. Any other failure also leaves it empty and returns an error
// wrapping domain.ErrStorageUnavailable; the repository stays usable.
func (r *MemoryOfferRepository) Load(ctx context.Context) (err error) {
	defer obs.Time(ctx, "offers.Load")(&err)

	if r.store == nil {
		return nil
	}

	blob, err := r.store.Load(ctx, OffersSnapshotKey)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load offers: %w: %w", domain.ErrStorageUnavailable, err)
	}

	var offers []domain.Offer
	if err := json.Unmarshal(blob, &offers); err != nil {
		return fmt.Errorf("load offers: %w: decode snapshot: %w", domain.ErrStorageUnavailable, err)
	}
	for i, o := range offers {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("load offers: %w: item at index %d: %w", domain.ErrStorageUnavailable, i+1, err)
		}
		// Continuations only exist on search results.
		offers[i].TransitContinuation = nil
	}

	r.mu.Lock()
	r.offers = offers
	r.version++
	r.mu.Unlock()

	r.persistMu.Lock()
	r.persisted = r.Version()
	r.persistMu.Unlock()

	return nil
}

// SeedIfEmpty installs seeds when the repository holds no offers. It runs at most
// once per repository and reports whether seeds were installed.
func (r *MemoryOfferRepository) SeedIfEmpty(ctx context.Context, seeds []domain.Offer) (bool, error) {
	for i, o := range seeds {
		if err := o.Validate(); err != nil {
			return false, fmt.Errorf("seed offers: item at index %d: %w", i+1, err)
		}
	}

	r.mu.Lock()
	if r.seeded || len(r.offers) > 0 {
		r.seeded = true
		r.mu.Unlock()
		return false, nil
	}

	offers := make([]domain.Offer, 0, len(seeds))
	for _, o := range seeds {
		o = o.Clone()
		o.TransitContinuation = nil
		offers = append(offers, o)
	}
	r.offers = offers
	r.seeded = true
	r.version++
	r.mu.Unlock()

	log.Printf("offers seeded count=%d", len(offers))
	r.persist(ctx)
	return true, nil
}

// ListOffers returns copies of all offers, newest first.
func (r *MemoryOfferRepository) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		out = append(out, o.Clone())
	}
	return out, nil
}

// InsertOffer publishes offer at the head of the list. Invalid offers, offers with a
// transit continuation and duplicate ids return domain.ErrInvalidOffer.
func (r *MemoryOfferRepository) InsertOffer(ctx context.Context, offer domain.Offer) error {
	if err := offer.Validate(); err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	if offer.TransitContinuation != nil {
		return fmt.Errorf("insert offer: %w: offer %s: stored offers cannot carry a transit continuation",
			domain.ErrInvalidOffer, offer.ID)
	}

	r.mu.Lock()
	for _, o := range r.offers {
		if o.ID == offer.ID {
			r.mu.Unlock()
			return fmt.Errorf("insert offer: %w: duplicate id %q", domain.ErrInvalidOffer, offer.ID)
		}
	}

	// The old slice is never written to again, so readers holding it stay consistent.
	next := make([]domain.Offer, 0, len(r.offers)+1)
	next = append(next, offer.Clone())
	next = append(next, r.offers...)
	r.offers = next
	r.version++
	r.mu.Unlock()

	r.persist(ctx)
	return nil
}

// Version changes on every successful insert, load or seed.
func (r *MemoryOfferRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// persist writes the latest state. Concurrent inserts may share one write; a write
// never replaces a newer snapshot with an older one.
func (r *MemoryOfferRepository) persist(ctx context.Context) {
	if r.store == nil {
		return
	}

	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.RLock()
	offers, version := r.offers, r.version
	r.mu.RUnlock()

	if version <= r.persisted {
		return
	}

	blob, err := json.Marshal(offers)
	if err != nil {
		log.Printf("offers snapshot encode failed version=%d: %v", version, err)
		return
	}

	// The write outlives a cancelled request; the offer is already published.
	if err := r.store.Save(context.WithoutCancel(ctx), OffersSnapshotKey, blob); err != nil {
		log.Printf("offers snapshot write failed version=%d: %v", version,
			fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err))
		return
	}
	r.persisted = version
}

var _ ports.VersionedOfferRepository = (*MemoryOfferRepository)(nil)

package ports

import (
	"context"
	"ride-match-service/internal/domain"
)

// Port: the mutable collection of ride offers.
type OfferRepository interface {
	// Return every offer in store order (most recently posted first).
	// The returned offers are copies owned by the caller.
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	// Publish a fully built offer at the head of the store.
	InsertOffer(ctx context.Context, offer domain.Offer) error
}

// Optional extension of OfferRepository exposing a counter that changes on every insert.
type VersionedOfferRepository interface {
	OfferRepository
	Version() uint64
}

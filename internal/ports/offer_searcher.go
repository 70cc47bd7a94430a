package ports

import (
	"context"
	"ride-match-service/internal/domain"
)

// Port: anything that answers ride searches (the matcher itself or a caching decorator).
type OfferSearcher interface {
	Search(ctx context.Context, q domain.Query) ([]domain.Offer, error)
}

package cache

import (
	"context"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Versioner reports a counter that changes whenever the searched data changes.
type Versioner interface {
	Version() uint64
}

// SearchCache memoizes search results per query and store version, so a new offer
// makes every older entry unreachable. Entries expire after the TTL.
type SearchCache struct {
	next    ports.OfferSearcher
	version Versioner
	c       *gocache.Cache
}

func NewSearchCache(next ports.OfferSearcher, version Versioner, ttl time.Duration) *SearchCache {
	return &SearchCache{
		next:    next,
		version: version,
		c:       gocache.New(ttl, 2*ttl),
	}
}

func searchKey(version uint64, q domain.Query) string {
	endpoint := func(l *domain.Location) string {
		if l == nil {
			return "*"
		}
		return strconv.Quote(l.Name)
	}
	return fmt.Sprintf("v%d|%s|%s|%s|%d", version, endpoint(q.Origin), endpoint(q.Destination), q.Sort, q.PassengerCount)
}

func cloneOffers(offers []domain.Offer) []domain.Offer {
	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Clone())
	}
	return out
}

// Search answers from the cache when possible. Errors are never cached.
func (s *SearchCache) Search(ctx context.Context, q domain.Query) ([]domain.Offer, error) {
	key := searchKey(s.version.Version(), q)

	if v, ok := s.c.Get(key); ok {
		return cloneOffers(v.([]domain.Offer)), nil
	}

	offers, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, cloneOffers(offers), gocache.DefaultExpiration)
	return offers, nil
}

// Len reports the number of cached entries, expired ones included until cleanup.
func (s *SearchCache) Len() int {
	return s.c.ItemCount()
}

var _ ports.OfferSearcher = (*SearchCache)(nil)

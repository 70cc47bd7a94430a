package estimator

import (
	"context"
	"math/rand/v2"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"sync"
)

// Ranges used by the placeholder estimate: 15..30 minutes and 5..25 km.
const (
	MinRandomMinutes = 15
	MaxRandomMinutes = 30
	MinRandomKm      = 5
	MaxRandomKm      = 25
)

// RandomEstimator produces a plausible placeholder estimate without looking at the
// locations. It is the default when no routing backend is configured.
type RandomEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomEstimator() *RandomEstimator {
	return NewSeededRandomEstimator(rand.Uint64())
}

// NewSeededRandomEstimator returns an estimator whose sequence is fixed by seed.
func NewSeededRandomEstimator(seed uint64) *RandomEstimator {
	return &RandomEstimator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (e *RandomEstimator) Estimate(ctx context.Context, _, _ domain.Location) (ports.RouteEstimate, error) {
	if err := ctx.Err(); err != nil {
		return ports.RouteEstimate{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return ports.RouteEstimate{
		DurationMinutes: MinRandomMinutes + e.rng.IntN(MaxRandomMinutes-MinRandomMinutes+1),
		DistanceKm:      float64(MinRandomKm + e.rng.IntN(MaxRandomKm-MinRandomKm+1)),
	}, nil
}

var _ ports.RouteEstimator = (*RandomEstimator)(nil)

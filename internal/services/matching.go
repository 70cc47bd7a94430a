package services

import (
	"context"
	"errors"
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/platform/obs"
	"ride-match-service/internal/ports"
)

// DefaultIndirectThreshold is the direct-match count below which transit stitching kicks in.
const DefaultIndirectThreshold = 2

// Matcher finds offers for a query in two phases.
//
// Direct matches are offers whose endpoints satisfy the query. When both endpoints are
// given and fewer than IndirectThreshold direct matches exist, offers leaving from the
// origin are stitched with a transit leg from their drop-off to the destination.
// Merged results are then ranked. Stored offers are never modified; results are copies.
type Matcher struct {
	Offers  ports.OfferRepository
	Transit ports.TransitCatalogue
	// Zero means DefaultIndirectThreshold.
	IndirectThreshold int
}

func NewMatcher(offers ports.OfferRepository, transit ports.TransitCatalogue, threshold int) *Matcher {
	return &Matcher{Offers: offers, Transit: transit, IndirectThreshold: threshold}
}

func (m *Matcher) threshold() int {
	if m.IndirectThreshold <= 0 {
		return DefaultIndirectThreshold
	}
	return m.IndirectThreshold
}

// Search returns ranked offers for q. No results is an empty slice, not an error.
func (m *Matcher) Search(ctx context.Context, q domain.Query) (_ []domain.Offer, err error) {
	defer obs.Time(ctx, "matcher.Search")(&err)

	if m.Offers == nil {
		return nil, errors.New("search offers: offer repository is nil")
	}

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}

	offers, err := m.Offers.ListOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("search offers: list offers: %w", err)
	}

	for _, o := range offers {
		if o.EstimatedDurationMinutes < 0 {
			return nil, fmt.Errorf(
				"search offers: %w: offer %s has negative duration %d",
				domain.ErrInvalidQuery, o.ID, o.EstimatedDurationMinutes,
			)
		}
	}

	direct := directMatches(offers, q)

	results := make([]domain.Offer, 0, len(direct))
	results = append(results, direct...)

	if q.Origin != nil && q.Destination != nil && len(direct) < m.threshold() {
		indirect, err := m.indirectMatches(offers, direct, q)
		if err != nil {
			return nil, fmt.Errorf("search offers: %w", err)
		}
		results = append(results, indirect...)
	}

	ranked, err := RankOffers(results, q.Sort)
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}

	return ranked, nil
}

func hasSeats(o domain.Offer, q domain.Query) bool {
	return q.PassengerCount <= 0 || o.AvailableSeats >= q.PassengerCount
}

func directMatches(offers []domain.Offer, q domain.Query) []domain.Offer {
	out := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if !hasSeats(o, q) {
			continue
		}
		if q.Origin != nil && !o.StartLocation.Matches(*q.Origin) {
			continue
		}
		if q.Destination != nil && !o.EndLocation.Matches(*q.Destination) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

// indirectMatches pairs offers leaving from the origin with a transit leg from their
// drop-off to the destination. Offers without a connecting leg are dropped.
func (m *Matcher) indirectMatches(offers, direct []domain.Offer, q domain.Query) ([]domain.Offer, error) {
	if m.Transit == nil {
		return []domain.Offer{}, nil
	}

	seen := make(map[string]struct{}, len(direct))
	for _, o := range direct {
		seen[o.ID] = struct{}{}
	}

	out := make([]domain.Offer, 0)
	for _, o := range offers {
		if _, ok := seen[o.ID]; ok {
			continue
		}
		if !hasSeats(o, q) || !o.StartLocation.Matches(*q.Origin) {
			continue
		}

		leg, ok := m.Transit.FindConnectingLeg(o.EndLocation.Name, q.Destination.Name)
		if !ok {
			continue
		}
		if leg.DurationMinutes < 0 {
			return nil, fmt.Errorf(
				"%w: transit leg %q has negative duration %d",
				domain.ErrInvalidQuery, leg.RouteName, leg.DurationMinutes,
			)
		}

		out = append(out, o.Clone().WithContinuation(leg))
	}

	return out, nil
}

var _ ports.OfferSearcher = (*Matcher)(nil)

package services

import (
	"cmp"
	"fmt"
	"ride-match-service/internal/domain"
	"slices"
)

// CompareFastest orders offers by ride duration plus any stitched transit leg.
func CompareFastest(a, b domain.Offer) int {
	return cmp.Compare(a.TotalDurationMinutes(), b.TotalDurationMinutes())
}

// CompareCheapest orders offers by cost per seat. Transit fares are not considered.
func CompareCheapest(a, b domain.Offer) int {
	return cmp.Compare(a.CostPerSeat, b.CostPerSeat)
}

// RankOffers returns a new slice ordered by pref. The sort is stable, so ties and
// SortNone keep the input order. The input slice is not modified.
func RankOffers(offers []domain.Offer, pref domain.SortPreference) ([]domain.Offer, error) {
	ranked := slices.Clone(offers)
	if ranked == nil {
		ranked = []domain.Offer{}
	}

	switch pref {
	case domain.SortNone:
	case domain.SortFastest:
		slices.SortStableFunc(ranked, CompareFastest)
	case domain.SortCheapest:
		slices.SortStableFunc(ranked, CompareCheapest)
	default:
		return nil, fmt.Errorf("rank offers: %w: unknown sort preference %q", domain.ErrInvalidQuery, pref)
	}

	return ranked, nil
}

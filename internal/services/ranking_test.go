package services

import (
	"errors"
	"ride-match-service/internal/domain"
	"slices"
	"testing"
)

func TestRankOffersCheapest(t *testing.T) {
	offers := []domain.Offer{
		offer("a", "A", "B", 10, 10),
		offer("b", "A", "B", 10, 25),
		offer("c", "A", "B", 10, 15),
	}

	got, err := RankOffers(offers, domain.SortCheapest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	costs := make([]float64, 0, len(got))
	for _, o := range got {
		costs = append(costs, o.CostPerSeat)
	}
	if !slices.Equal(costs, []float64{10, 15, 25}) {
		t.Fatalf("costs = %v, want [10 15 25]", costs)
	}
	if !slices.Equal(ids(offers), []string{"a", "b", "c"}) {
		t.Fatalf("input reordered: %v", ids(offers))
	}
}

func TestRankOffersFastestIsStable(t *testing.T) {
	offers := []domain.Offer{
		offer("a", "A", "B", 20, 10),
		offer("b", "A", "B", 10, 10),
		offer("c", "A", "B", 20, 10),
		offer("d", "A", "C", 5, 10).WithContinuation(domain.TransitLeg{DurationMinutes: 5}),
	}

	got, err := RankOffers(offers, domain.SortFastest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids(got), []string{"b", "d", "a", "c"}) {
		t.Fatalf("ids = %v, want [b d a c]", ids(got))
	}
}

func TestRankOffersNoneKeepsOrder(t *testing.T) {
	offers := []domain.Offer{offer("b", "A", "B", 20, 30), offer("a", "A", "B", 10, 10)}

	got, err := RankOffers(offers, domain.SortNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids(got), []string{"b", "a"}) {
		t.Fatalf("ids = %v, want [b a]", ids(got))
	}
}

func TestRankOffersEmpty(t *testing.T) {
	got, err := RankOffers(nil, domain.SortCheapest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRankOffersUnknownPreference(t *testing.T) {
	if _, err := RankOffers(nil, "slowest"); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

package cache

import (
	"context"
	"errors"
	"ride-match-service/internal/domain"
	"sync/atomic"
	"testing"
	"time"
)

type countingSearcher struct {
	calls   atomic.Int32
	version uint64
	err     error
}

func (s *countingSearcher) Search(_ context.Context, q domain.Query) ([]domain.Offer, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Offer{
		{ID: "1", CostPerSeat: 10, TransitContinuation: &domain.TransitLeg{RouteName: "Bus 50", DurationMinutes: 20}},
	}, nil
}

func (s *countingSearcher) Version() uint64 { return s.version }

func TestSearchCacheHitsUntilVersionChanges(t *testing.T) {
	next := &countingSearcher{version: 1}
	c := NewSearchCache(next, next, time.Minute)
	q := domain.Query{Origin: &domain.Location{Name: "Dubai Mall"}, Destination: &domain.Location{Name: "Al Quoz"}}

	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), q); err != nil {
			t.Fatalf("search: %v", err)
		}
	}
	if next.calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", next.calls.Load())
	}

	next.version = 2
	if _, err := c.Search(context.Background(), q); err != nil {
		t.Fatalf("search: %v", err)
	}
	if next.calls.Load() != 2 {
		t.Fatalf("calls after version bump = %d, want 2", next.calls.Load())
	}
}

func TestSearchCacheDistinguishesQueries(t *testing.T) {
	next := &countingSearcher{version: 1}
	c := NewSearchCache(next, next, time.Minute)

	queries := []domain.Query{
		{},
		{Origin: &domain.Location{Name: ""}},
		{Destination: &domain.Location{Name: ""}},
		{Origin: &domain.Location{Name: "Deira"}},
		{Origin: &domain.Location{Name: "Deira"}, Sort: domain.SortCheapest},
		{Origin: &domain.Location{Name: "Deira"}, PassengerCount: 2},
	}
	for _, q := range queries {
		if _, err := c.Search(context.Background(), q); err != nil {
			t.Fatalf("search: %v", err)
		}
	}

	if int(next.calls.Load()) != len(queries) {
		t.Fatalf("calls = %d, want %d", next.calls.Load(), len(queries))
	}
}

func TestSearchCacheReturnsCopies(t *testing.T) {
	next := &countingSearcher{version: 1}
	c := NewSearchCache(next, next, time.Minute)

	first, _ := c.Search(context.Background(), domain.Query{})
	first[0].CostPerSeat = 99
	first[0].TransitContinuation.DurationMinutes = 99

	second, _ := c.Search(context.Background(), domain.Query{})
	if second[0].CostPerSeat != 10 || second[0].TransitContinuation.DurationMinutes != 20 {
		t.Fatalf("cached result was mutated through a returned copy: %+v", second[0])
	}
}

func TestSearchCacheDoesNotCacheErrors(t *testing.T) {
	next := &countingSearcher{version: 1, err: domain.ErrInvalidQuery}
	c := NewSearchCache(next, next, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.Search(context.Background(), domain.Query{}); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Fatalf("expected ErrInvalidQuery, got %v", err)
		}
	}
	if next.calls.Load() != 2 || c.Len() != 0 {
		t.Fatalf("calls = %d, entries = %d; errors must not be cached", next.calls.Load(), c.Len())
	}
}

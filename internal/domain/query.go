package domain

import (
	"fmt"
	"strings"
)

// SortPreference selects the ranking applied to search results.
type SortPreference string

const (
	SortNone     SortPreference = ""
	SortFastest  SortPreference = "fastest"
	SortCheapest SortPreference = "cheapest"
)

// ParseSortPreference accepts "fastest", "cheapest", or "" / "none" for no sorting.
func ParseSortPreference(s string) (SortPreference, error) {
	switch p := SortPreference(strings.ToLower(strings.TrimSpace(s))); p {
	case SortNone, SortFastest, SortCheapest:
		return p, nil
	case "none", "null":
		return SortNone, nil
	default:
		return SortNone, fmt.Errorf("%w: unknown sort preference %q", ErrInvalidQuery, s)
	}
}

// Query is a transient search request. Nil endpoints mean "any".
type Query struct {
	Origin      *Location
	Destination *Location
	Sort        SortPreference
	// PassengerCount filters out offers with fewer available seats; zero disables the filter.
	PassengerCount int
}

func (q Query) Validate() error {
	switch q.Sort {
	case SortNone, SortFastest, SortCheapest:
	default:
		return fmt.Errorf("%w: unknown sort preference %q", ErrInvalidQuery, q.Sort)
	}
	if q.PassengerCount < 0 {
		return fmt.Errorf("%w: passenger count must be >= 0, got %d", ErrInvalidQuery, q.PassengerCount)
	}
	return nil
}

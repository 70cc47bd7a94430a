package domain

import (
	"errors"
	"testing"
)

func TestParseSortPreference(t *testing.T) {
	tests := map[string]SortPreference{
		"":          SortNone,
		"none":      SortNone,
		"null":      SortNone,
		"fastest":   SortFastest,
		" Cheapest": SortCheapest,
	}
	for in, want := range tests {
		got, err := ParseSortPreference(in)
		if err != nil {
			t.Fatalf("ParseSortPreference(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSortPreference(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseSortPreference("shortest"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestQueryValidate(t *testing.T) {
	if err := (Query{Sort: SortFastest}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Query{Sort: "scenic"}).Validate(); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("err = %v, want ErrInvalidQuery", err)
	}
	if err := (Query{PassengerCount: -1}).Validate(); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("err = %v, want ErrInvalidQuery", err)
	}
}

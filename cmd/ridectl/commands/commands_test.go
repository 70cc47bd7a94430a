package commands

import (
	"bytes"
	"encoding/json"
	"ride-match-service/internal/domain"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SNAPSHOT_BACKEND", "memory")
	t.Setenv("ROUTE_ESTIMATOR", "random")
	t.Setenv("TRANSIT_STRATEGY", "first")
	t.Setenv("INDIRECT_THRESHOLD", "2")
	t.Setenv("EMISSION_FACTORS", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--seeds", "../../../data/seeds"}, args...))
	err := execute(t.Context(), root)
	return out.String(), err
}

func TestOffersListsSeeds(t *testing.T) {
	out, err := run(t, "offers")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	for _, driver := range []string{"Ahmed", "Fatima", "Khalid"} {
		if !strings.Contains(out, driver) {
			t.Errorf("output missing %s:\n%s", driver, out)
		}
	}
	if wire != nil {
		t.Fatal("wire left open after the command")
	}
}

func TestSearchConnectsTransit(t *testing.T) {
	out, err := run(t, "--json", "search", "--from", "Dubai Mall", "--to", "Al Quoz")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	var offers []domain.Offer
	if err := json.Unmarshal([]byte(out), &offers); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if offers[0].DriverName != "Fatima" || offers[0].TransitContinuation == nil ||
		offers[0].TransitContinuation.RouteName != "Bus 50" {
		t.Fatalf("unexpected result: %+v", offers[0])
	}
}

func TestSearchRejectsUnknownSort(t *testing.T) {
	if _, err := run(t, "search", "--sort", "scenic"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}

func TestPostUsesRegistryLocation(t *testing.T) {
	out, err := run(t, "--json", "post", "--from", "Barsha", "--to", "DIFC", "--cost", "20", "--capacity", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	var offer domain.Offer
	if err := json.Unmarshal([]byte(out), &offer); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !strings.HasPrefix(offer.ID, "user-") {
		t.Errorf("id = %q, want user- prefix", offer.ID)
	}
	if offer.StartLocation.Name != "Al Barsha" || offer.StartLocation.Coordinates.IsZero() {
		t.Errorf("start location not resolved: %+v", offer.StartLocation)
	}
	if offer.DriverName != "You" || offer.AvailableSeats != 3 {
		t.Errorf("unexpected defaults: %+v", offer)
	}
}

func TestPostRejectsInvalidCost(t *testing.T) {
	if _, err := run(t, "post", "--from", "Deira", "--to", "DIFC", "--cost", "0", "--capacity", "3"); err == nil {
		t.Fatal("expected error for zero cost")
	}
	if wire != nil {
		t.Fatal("wire left open after a failed command")
	}
}

func TestLocationsLookup(t *testing.T) {
	out, err := run(t, "locations", "Internet")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Dubai Internet City") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "locations", "Atlantis"); err == nil {
		t.Fatal("expected error for unknown location")
	}
}

func TestTransitListsLegs(t *testing.T) {
	out, err := run(t, "transit")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if strings.Count(out, "\n") != 4 {
		t.Fatalf("expected header plus 3 legs:\n%s", out)
	}
}

package domain

import (
	"math"
	"testing"
)

func TestEmissionTableFactor(t *testing.T) {
	table := NewEmissionTable(180, map[string]float64{"SUV": 230, "electric": 0})

	if got := table.Factor("Sedan"); got != 180 {
		t.Errorf("sedan factor = %v, want 180", got)
	}
	if got := table.Factor("suv"); got != 230 {
		t.Errorf("suv factor = %v, want 230", got)
	}
	if got := table.Factor("Electric"); got != 0 {
		t.Errorf("electric factor = %v, want 0", got)
	}

	var zero EmissionTable
	if got := zero.Factor("Van"); got != DefaultEmissionFactor {
		t.Errorf("zero table factor = %v, want %v", got, DefaultEmissionFactor)
	}
}

func TestEmissionTableCO2SavedKg(t *testing.T) {
	table := NewEmissionTable(180, nil)

	// 12 km * 180 g/km * 3 seats / 1000 = 6.48 kg
	got := table.CO2SavedKg(12, 3, "Your Car")
	if math.Abs(got-6.48) > 1e-9 {
		t.Fatalf("co2 saved = %v, want 6.48", got)
	}
}

func TestNewEmissionTableDefaultsNonPositiveFactor(t *testing.T) {
	for _, def := range []float64{0, -5} {
		table := NewEmissionTable(def, nil)
		if got := table.Factor("Van"); got != DefaultEmissionFactor {
			t.Errorf("NewEmissionTable(%v, nil).Factor = %v, want %v", def, got, DefaultEmissionFactor)
		}
	}

	// Listed vehicles keep an explicit zero.
	table := NewEmissionTable(0, map[string]float64{"Electric": 0})
	if got := table.Factor("electric"); got != 0 {
		t.Errorf("electric factor = %v, want 0", got)
	}
}

package domain

import "strings"

// DefaultEmissionFactor is grams of CO2 per km for an average car.
const DefaultEmissionFactor = 180.0

// EmissionTable maps vehicle types to grams of CO2 per km. Lookups ignore case.
type EmissionTable struct {
	defaultFactor float64
	byVehicle     map[string]float64
}

// NewEmissionTable builds a table whose unlisted vehicles use defaultFactor. A
// defaultFactor <= 0 means DefaultEmissionFactor; zero-emission vehicles are listed
// explicitly in byVehicle.
func NewEmissionTable(defaultFactor float64, byVehicle map[string]float64) EmissionTable {
	if defaultFactor <= 0 {
		defaultFactor = DefaultEmissionFactor
	}
	t := EmissionTable{
		defaultFactor: defaultFactor,
		byVehicle:     make(map[string]float64, len(byVehicle)),
	}
	for vehicle, factor := range byVehicle {
		t.byVehicle[strings.ToLower(strings.TrimSpace(vehicle))] = factor
	}
	return t
}

// Factor returns the factor for vehicleType, falling back to the table default.
// A zero-value table falls back to DefaultEmissionFactor.
func (t EmissionTable) Factor(vehicleType string) float64 {
	if f, ok := t.byVehicle[strings.ToLower(strings.TrimSpace(vehicleType))]; ok {
		return f
	}
	if t.byVehicle == nil && t.defaultFactor == 0 {
		return DefaultEmissionFactor
	}
	return t.defaultFactor
}

// CO2SavedKg estimates emissions avoided by sharing seats on a trip of distanceKm.
func (t EmissionTable) CO2SavedKg(distanceKm float64, seats int, vehicleType string) float64 {
	return distanceKm * t.Factor(vehicleType) * float64(seats) / 1000
}

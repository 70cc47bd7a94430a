package catalog

import (
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"slices"
	"strings"
)

// LocationRegistry is the fixed list of named points users pick from.
type LocationRegistry struct {
	locations []domain.Location
}

func NewLocationRegistry(locations []domain.Location) *LocationRegistry {
	return &LocationRegistry{locations: slices.Clone(locations)}
}

// FindByName prefers an exact name match, then the first location whose name
// contains text. Matching is case-sensitive, like offer search.
func (r *LocationRegistry) FindByName(text string) (domain.Location, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Location{}, false
	}

	for _, l := range r.locations {
		if l.Name == text {
			return l, true
		}
	}
	for _, l := range r.locations {
		if domain.NameMatches(l.Name, text) {
			return l, true
		}
	}
	return domain.Location{}, false
}

func (r *LocationRegistry) Locations() []domain.Location {
	return slices.Clone(r.locations)
}

var _ ports.LocationRegistry = (*LocationRegistry)(nil)

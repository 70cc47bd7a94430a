package ports

import "ride-match-service/internal/domain"

// Port: static catalogue of named points.
type LocationRegistry interface {
	FindByName(text string) (domain.Location, bool)
	Locations() []domain.Location
}

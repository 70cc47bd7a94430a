package ports

import "ride-match-service/internal/domain"

// Port: read-only catalogue of public transit legs.
type TransitCatalogue interface {
	// Return a leg continuing from fromName to toName, if one exists.
	FindConnectingLeg(fromName, toName string) (domain.TransitLeg, bool)
	// Return all legs in catalogue order.
	Legs() []domain.TransitLeg
}

package catalog

import (
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/ports"
	"slices"
	"strings"
)

// Strategy picks among several legs that connect the same two points.
type Strategy string

const (
	// StrategyFirst takes the first matching leg in catalogue order.
	StrategyFirst Strategy = "first"
	// StrategyFastest takes the shortest matching leg; ties keep catalogue order.
	StrategyFastest Strategy = "fastest"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StrategyFirst:
		return StrategyFirst, nil
	case StrategyFastest:
		return StrategyFastest, nil
	default:
		return "", fmt.Errorf("unknown transit strategy %q", s)
	}
}

// TransitCatalogue is read-only after construction and safe for concurrent use.
type TransitCatalogue struct {
	legs     []domain.TransitLeg
	strategy Strategy
}

func NewTransitCatalogue(legs []domain.TransitLeg, strategy Strategy) *TransitCatalogue {
	if strategy == "" {
		strategy = StrategyFirst
	}
	return &TransitCatalogue{legs: slices.Clone(legs), strategy: strategy}
}

// FindConnectingLeg returns a leg whose From equals or is contained in fromName and
// whose To equals or is contained in toName. Matching is case-sensitive.
func (c *TransitCatalogue) FindConnectingLeg(fromName, toName string) (domain.TransitLeg, bool) {
	var best domain.TransitLeg
	found := false

	for _, leg := range c.legs {
		if !domain.NameMatches(fromName, leg.From) || !domain.NameMatches(toName, leg.To) {
			continue
		}
		if c.strategy != StrategyFastest {
			return leg, true
		}
		if !found || leg.DurationMinutes < best.DurationMinutes {
			best, found = leg, true
		}
	}

	return best, found
}

func (c *TransitCatalogue) Legs() []domain.TransitLeg {
	return slices.Clone(c.legs)
}

var _ ports.TransitCatalogue = (*TransitCatalogue)(nil)

package domain

import "strings"

// Location is a named point. Two locations are the same place when their names are equal.
type Location struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
}

// NameMatches reports whether candidate satisfies query: either an exact match or
// candidate contains query. The comparison is case-sensitive; "dubai mall" does not
// match "Dubai Mall".
func NameMatches(candidate, query string) bool {
	return candidate == query || strings.Contains(candidate, query)
}

// Matches applies NameMatches with l as the candidate.
func (l Location) Matches(query Location) bool {
	return NameMatches(l.Name, query.Name)
}

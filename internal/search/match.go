package search

import "strings"

// ListingFacts carries the listing attributes criteria are matched against.
// The alert digest builds one per candidate listing.
type ListingFacts struct {
	Neighborhood string
	MonthlyRent  int64
	PropertyType PropertyType
	SquareFeet   int64
}

// Matches reports whether a listing satisfies every set criteria field.
// Neighborhood comparison ignores case; rent and square-feet bounds are
// inclusive. An empty criteria matches everything.
func (c Criteria) Matches(f ListingFacts) bool {
	if c.Neighborhood != nil && !strings.EqualFold(*c.Neighborhood, f.Neighborhood) {
		return false
	}
	if c.MinRent != nil && f.MonthlyRent < *c.MinRent {
		return false
	}
	if c.MaxRent != nil && f.MonthlyRent > *c.MaxRent {
		return false
	}
	if c.PropertyType != nil && *c.PropertyType != f.PropertyType {
		return false
	}
	if c.MinSquareFeet != nil && f.SquareFeet < *c.MinSquareFeet {
		return false
	}
	if c.MaxSquareFeet != nil && f.SquareFeet > *c.MaxSquareFeet {
		return false
	}
	return true
}

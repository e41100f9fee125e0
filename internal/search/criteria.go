// Package search holds the listing search criteria model shared by the
// listing search endpoint, saved searches, and the alert digest.
package search

import (
	"fmt"
	"strings"
)

// PropertyType enumerates the rental unit categories a listing can carry.
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeBedsitter  PropertyType = "BEDSITTER"
	PropertyTypeStudio     PropertyType = "STUDIO"
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeTownhouse  PropertyType = "TOWNHOUSE"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
)

var propertyTypeLabels = map[PropertyType]string{
	PropertyTypeApartment:  "Apartment",
	PropertyTypeBedsitter:  "Bedsitter",
	PropertyTypeStudio:     "Studio",
	PropertyTypeHouse:      "House",
	PropertyTypeTownhouse:  "Townhouse",
	PropertyTypeCommercial: "Commercial",
}

// ParsePropertyType matches s against the known property types, ignoring
// case and surrounding whitespace. The second return is false for unknown
// values.
func ParsePropertyType(s string) (PropertyType, bool) {
	t := PropertyType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := propertyTypeLabels[t]; !ok {
		return "", false
	}
	return t, true
}

// Label returns the display form of the type, e.g. "Apartment".
func (t PropertyType) Label() string {
	return propertyTypeLabels[t]
}

// Criteria describes a listing search. Every field is optional; pointers
// distinguish an unset field from a zero value, so a MinRent of 0 means
// "exactly free or above" while a nil MinRent means no lower bound at all.
type Criteria struct {
	Neighborhood  *string       `json:"neighborhood,omitempty"`
	MinRent       *int64        `json:"minRent,omitempty"`
	MaxRent       *int64        `json:"maxRent,omitempty"`
	PropertyType  *PropertyType `json:"propertyType,omitempty"`
	MinSquareFeet *int64        `json:"minSquareFeet,omitempty"`
	MaxSquareFeet *int64        `json:"maxSquareFeet,omitempty"`
}

// RangeError reports a criteria range whose lower bound exceeds its upper
// bound.
type RangeError struct {
	Field string
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s range: min %d exceeds max %d", e.Field, e.Min, e.Max)
}

// Validate checks the criteria for internal consistency without mutating
// it. A lower bound above its upper bound yields a *RangeError; everything
// else, including a completely empty criteria, is valid.
func (c Criteria) Validate() error {
	if c.MinRent != nil && c.MaxRent != nil && *c.MinRent > *c.MaxRent {
		return &RangeError{Field: "rent", Min: *c.MinRent, Max: *c.MaxRent}
	}
	if c.MinSquareFeet != nil && c.MaxSquareFeet != nil && *c.MinSquareFeet > *c.MaxSquareFeet {
		return &RangeError{Field: "squareFeet", Min: *c.MinSquareFeet, Max: *c.MaxSquareFeet}
	}
	return nil
}

// IsZero reports whether no field is set.
func (c Criteria) IsZero() bool {
	return c.Neighborhood == nil && c.MinRent == nil && c.MaxRent == nil &&
		c.PropertyType == nil && c.MinSquareFeet == nil && c.MaxSquareFeet == nil
}

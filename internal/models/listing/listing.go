package models

import (
	"time"

	"ke.kejani.api/internal/search"
)

const (
	StatusAvailable = "AVAILABLE"
	StatusRented    = "RENTED"
	StatusArchived  = "ARCHIVED"
)

// ValidStatus reports whether s is a known listing status.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusRented || s == StatusArchived
}

type Listing struct {
	ID           string              `json:"id"`
	LandlordUID  string              `json:"landlordUid"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Neighborhood string              `json:"neighborhood"`
	PropertyType search.PropertyType `json:"propertyType"`
	MonthlyRent  int64               `json:"monthlyRent"`
	SquareFeet   int64               `json:"squareFeet"`
	Bedrooms     int                 `json:"bedrooms"`
	Bathrooms    int                 `json:"bathrooms"`
	Status       string              `json:"status"`
	Photos       []string            `json:"photos"`
	Amenities    []string            `json:"amenities"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// Facts adapts the listing for criteria matching.
func (l Listing) Facts() search.ListingFacts {
	return search.ListingFacts{
		Neighborhood: l.Neighborhood,
		MonthlyRent:  l.MonthlyRent,
		PropertyType: l.PropertyType,
		SquareFeet:   l.SquareFeet,
	}
}

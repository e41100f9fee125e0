package models

type CreateListingRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Neighborhood string   `json:"neighborhood"`
	PropertyType string   `json:"propertyType"`
	MonthlyRent  int64    `json:"monthlyRent"`
	SquareFeet   int64    `json:"squareFeet"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Photos       []string `json:"photos,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

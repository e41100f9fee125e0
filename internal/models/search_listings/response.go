package models

import listingmodels "ke.kejani.api/internal/models/listing"

type SearchListingsResponse struct {
	Listings    []listingmodels.Listing `json:"listings"`
	TotalCount  int                     `json:"totalCount"`
	Page        int                     `json:"page"`
	Limit       int                     `json:"limit"`
	TotalPages  int                     `json:"totalPages"`
	HasNext     bool                    `json:"hasNext"`
	HasPrevious bool                    `json:"hasPrevious"`
	QueryString string                  `json:"queryString"`
	Summary     []string                `json:"summary"`
}

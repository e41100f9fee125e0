package models

import listingmodels "ke.kejani.api/internal/models/listing"

type CreateListingResponse struct {
	Listing listingmodels.Listing `json:"listing"`
}

package models

import listingmodels "ke.kejani.api/internal/models/listing"

type GetListingResponse struct {
	Listing listingmodels.Listing `json:"listing"`
}

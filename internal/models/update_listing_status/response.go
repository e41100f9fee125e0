package models

import listingmodels "ke.kejani.api/internal/models/listing"

type UpdateListingStatusResponse struct {
	Listing listingmodels.Listing `json:"listing"`
}

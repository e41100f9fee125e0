package models

type UpdateListingStatusRequest struct {
	ListingID string `json:"listingId"`
	Status    string `json:"status"`
}

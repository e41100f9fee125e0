package models

type CreateInquiryRequest struct {
	ListingID string `json:"listingId"`
	Message   string `json:"message"`
}

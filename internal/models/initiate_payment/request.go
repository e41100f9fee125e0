package models

type InitiatePaymentRequest struct {
	ListingID        string `json:"listingId,omitempty"`
	Amount           int64  `json:"amount"`
	PhoneNumber      string `json:"phoneNumber"`
	AccountReference string `json:"accountReference,omitempty"`
}

package models

import "time"

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Statuses lists every payment status, in display order.
var Statuses = []string{StatusPending, StatusCompleted, StatusFailed}

// ValidStatus reports whether s is a known payment status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}

type Payment struct {
	ID                string    `json:"id"`
	PayerUID          string    `json:"payerUid"`
	ListingID         string    `json:"listingId,omitempty"`
	Amount            int64     `json:"amount"`
	PhoneNumber       string    `json:"phoneNumber"`
	AccountReference  string    `json:"accountReference"`
	MerchantRequestID string    `json:"merchantRequestId,omitempty"`
	CheckoutRequestID string    `json:"checkoutRequestId,omitempty"`
	MpesaReceipt      string    `json:"mpesaReceipt,omitempty"`
	Status            string    `json:"status"`
	FailureReason     string    `json:"failureReason,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

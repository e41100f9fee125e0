package models

import "time"

const (
	StatusPending   = "PENDING"
	StatusResponded = "RESPONDED"
	StatusClosed    = "CLOSED"
)

// Statuses lists every inquiry status, in dashboard display order.
var Statuses = []string{StatusPending, StatusResponded, StatusClosed}

// ValidStatus reports whether s is a known inquiry status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusResponded || s == StatusClosed
}

type Inquiry struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listingId"`
	ListingTitle string    `json:"listingTitle,omitempty"`
	TenantUID    string    `json:"tenantUid"`
	LandlordUID  string    `json:"landlordUid"`
	Message      string    `json:"message"`
	Response     string    `json:"response,omitempty"`
	Status       string    `json:"status"`
	ChannelID    string    `json:"channelId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

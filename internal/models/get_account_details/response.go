package models

import "time"

type GetAccountDetailsResponse struct {
	UID                string    `json:"uid"`
	DisplayName        string    `json:"displayName"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phoneNumber,omitempty"`
	Role               string    `json:"role"`
	EmailVerified      bool      `json:"emailVerified"`
	AccountCreatedAt   time.Time `json:"accountCreatedAt"`
	AccountUpdatedAt   time.Time `json:"accountUpdatedAt"`
	TotalListings      int       `json:"totalListings"`
	TotalInquiries     int       `json:"totalInquiries"`
	TotalDocuments     int       `json:"totalDocuments"`
	TotalPayments      int       `json:"totalPayments"`
	TotalSavedSearches int       `json:"totalSavedSearches"`
}

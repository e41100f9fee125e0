package models

import "time"

const (
	TypeLease      = "LEASE"
	TypeReceipt    = "RECEIPT"
	TypeInspection = "INSPECTION"
	TypeOther      = "OTHER"
)

// ValidType reports whether s is a known document type.
func ValidType(s string) bool {
	switch s {
	case TypeLease, TypeReceipt, TypeInspection, TypeOther:
		return true
	}
	return false
}

type Document struct {
	ID        string    `json:"id"`
	OwnerUID  string    `json:"ownerUid"`
	ListingID string    `json:"listingId,omitempty"`
	Title     string    `json:"title"`
	DocType   string    `json:"docType"`
	FilePath  string    `json:"-"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}

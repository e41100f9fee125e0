package models

type ListInquiriesRequest struct {
	Status string `json:"status,omitempty"`
	Query  string `json:"query,omitempty"`
}

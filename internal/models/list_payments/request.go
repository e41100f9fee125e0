package models

type ListPaymentsRequest struct {
	Status string `json:"status,omitempty"`
	Query  string `json:"query,omitempty"`
}

package models

type InquiryCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

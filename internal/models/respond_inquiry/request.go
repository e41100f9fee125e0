package models

type RespondInquiryRequest struct {
	InquiryID string `json:"inquiryId"`
	Response  string `json:"response"`
}

package models

type CloseInquiryRequest struct {
	InquiryID string `json:"inquiryId"`
}

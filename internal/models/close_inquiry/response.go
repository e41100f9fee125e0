package models

import inquirymodels "ke.kejani.api/internal/models/inquiry"

type CloseInquiryResponse struct {
	Inquiry inquirymodels.Inquiry `json:"inquiry"`
}

package models

import inquirymodels "ke.kejani.api/internal/models/inquiry"

type RespondInquiryResponse struct {
	Inquiry inquirymodels.Inquiry `json:"inquiry"`
}

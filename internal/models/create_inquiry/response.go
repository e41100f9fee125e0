package models

import inquirymodels "ke.kejani.api/internal/models/inquiry"

type CreateInquiryResponse struct {
	Inquiry inquirymodels.Inquiry `json:"inquiry"`
}

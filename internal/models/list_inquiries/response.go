package models

import inquirymodels "ke.kejani.api/internal/models/inquiry"

type ListInquiriesResponse struct {
	Inquiries  []inquirymodels.Inquiry `json:"inquiries"`
	TotalCount int                     `json:"totalCount"`
}

package models

import documentmodels "ke.kejani.api/internal/models/document"

type ListDocumentsResponse struct {
	Documents  []documentmodels.Document `json:"documents"`
	TotalCount int                       `json:"totalCount"`
}

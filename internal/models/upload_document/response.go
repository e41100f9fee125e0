package models

import documentmodels "ke.kejani.api/internal/models/document"

type UploadDocumentResponse struct {
	Document documentmodels.Document `json:"document"`
}

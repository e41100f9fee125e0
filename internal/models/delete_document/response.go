package models

type DeleteDocumentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

package models

type DeleteDocumentRequest struct {
	DocumentID string `json:"documentId"`
}

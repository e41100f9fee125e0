package models

type ListDocumentsRequest struct {
	DocType string `json:"docType,omitempty"`
	Query   string `json:"query,omitempty"`
}

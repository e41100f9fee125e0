package models

type DeleteSavedSearchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

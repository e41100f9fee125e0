package models

type DeleteSavedSearchRequest struct {
	SearchID string `json:"searchId"`
}

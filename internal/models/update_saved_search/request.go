package models

import "ke.kejani.api/internal/search"

type UpdateSavedSearchRequest struct {
	SearchID string          `json:"searchId"`
	Name     string          `json:"name"`
	Criteria search.Criteria `json:"criteria"`
}

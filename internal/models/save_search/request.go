package models

import "ke.kejani.api/internal/search"

type SaveSearchRequest struct {
	Name     string          `json:"name"`
	Criteria search.Criteria `json:"criteria"`
}

package models

import (
	"time"

	"ke.kejani.api/internal/search"
)

type SavedSearch struct {
	ID        string          `json:"id"`
	UserUID   string          `json:"userUid"`
	Name      string          `json:"name"`
	Criteria  search.Criteria `json:"criteria"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

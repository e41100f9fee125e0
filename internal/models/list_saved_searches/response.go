package models

import savedsearchmodels "ke.kejani.api/internal/models/savedsearch"

type SavedSearchView struct {
	savedsearchmodels.SavedSearch
	QueryString string   `json:"queryString"`
	Summary     []string `json:"summary"`
}

type ListSavedSearchesResponse struct {
	Searches   []SavedSearchView `json:"searches"`
	TotalCount int               `json:"totalCount"`
}

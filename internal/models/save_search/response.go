package models

import savedsearchmodels "ke.kejani.api/internal/models/savedsearch"

type SaveSearchResponse struct {
	SavedSearch savedsearchmodels.SavedSearch `json:"savedSearch"`
	QueryString string                        `json:"queryString"`
	Summary     []string                      `json:"summary"`
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSavedSearchesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSavedSearchesHandler(nil, testLogger())

	router := gin.New()
	group := router.Group("/api/v1/saved-searches", withUID("user-1"))
	group.POST("/save-search", h.SaveSearch)
	group.POST("/update-saved-search", h.UpdateSavedSearch)
	group.POST("/delete-saved-search", h.DeleteSavedSearch)
	return router
}

func TestSaveSearchRequiresName(t *testing.T) {
	router := setupSavedSearchesRouter()

	for _, body := range []string{
		`{}`,
		`{"name": "   "}`,
	} {
		w := postJSON(router, "/api/v1/saved-searches/save-search", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
	}
}

func TestSaveSearchRejectsInvertedRange(t *testing.T) {
	router := setupSavedSearchesRouter()

	body := `{"name": "Cheap Kilimani", "criteria": {"minRent": 80000, "maxRent": 30000}}`
	w := postJSON(router, "/api/v1/saved-searches/save-search", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid rent range: min 80000 exceeds max 30000")
}

func TestSaveSearchRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSavedSearchesHandler(nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/saved-searches/save-search", h.SaveSearch)

	w := postJSON(router, "/api/v1/saved-searches/save-search", `{"name": "Westlands"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateSavedSearchValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			"missing search id",
			`{"name": "Westlands"}`,
			"Search ID is required",
		},
		{
			"blank name",
			`{"searchId": "b1b8307e-4392-4f0b-ba43-d74f2e17a2b7", "name": " "}`,
			"Name is required",
		},
		{
			"inverted range",
			`{"searchId": "b1b8307e-4392-4f0b-ba43-d74f2e17a2b7", "name": "Westlands", "criteria": {"minSquareFeet": 500, "maxSquareFeet": 100}}`,
			"invalid squareFeet range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupSavedSearchesRouter()

			w := postJSON(router, "/api/v1/saved-searches/update-saved-search", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestDeleteSavedSearchRequiresID(t *testing.T) {
	router := setupSavedSearchesRouter()

	w := postJSON(router, "/api/v1/saved-searches/delete-saved-search", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Search ID is required")
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupCreateListingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewListingsHandler(nil, nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/listings/create-listing", withUID("landlord-1"), h.CreateListing)
	return router
}

func TestCreateListingValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			"missing title",
			`{"neighborhood": "Kilimani", "propertyType": "APARTMENT", "monthlyRent": 45000}`,
			"Title is required",
		},
		{
			"blank neighborhood",
			`{"title": "2BR with balcony", "neighborhood": "   ", "propertyType": "APARTMENT", "monthlyRent": 45000}`,
			"Neighborhood is required",
		},
		{
			"unknown property type",
			`{"title": "2BR with balcony", "neighborhood": "Kilimani", "propertyType": "CASTLE", "monthlyRent": 45000}`,
			"Unknown property type",
		},
		{
			"negative rent",
			`{"title": "2BR with balcony", "neighborhood": "Kilimani", "propertyType": "APARTMENT", "monthlyRent": -1}`,
			"Monthly rent must not be negative",
		},
		{
			"negative square feet",
			`{"title": "2BR with balcony", "neighborhood": "Kilimani", "propertyType": "APARTMENT", "monthlyRent": 45000, "squareFeet": -20}`,
			"Square feet must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupCreateListingRouter()

			w := postJSON(router, "/api/v1/listings/create-listing", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestCreateListingRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewListingsHandler(nil, nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/listings/create-listing", h.CreateListing)

	w := postJSON(router, "/api/v1/listings/create-listing", `{"title": "2BR"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not authenticated")
}

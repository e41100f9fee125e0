package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSearchRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewListingsHandler(nil, nil, testLogger())

	router := gin.New()
	router.GET("/api/v1/listings/search", h.SearchListings)
	return router
}

func TestSearchListingsRejectsMalformedCriteria(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"non-numeric rent", "minRent=abc", `invalid value "abc" for minRent`},
		{"negative rent", "maxRent=-5", "must not be negative"},
		{"non-numeric square feet", "minSquareFeet=big", `invalid value "big" for minSquareFeet`},
		{"unknown property type", "propertyType=CASTLE", "unknown property type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupSearchRouter()

			w := getPath(router, "/api/v1/listings/search?"+tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.wantMsg)
		})
	}
}

func TestSearchListingsRejectsInvertedRanges(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"rent", "minRent=50000&maxRent=20000", "invalid rent range: min 50000 exceeds max 20000"},
		{"square feet", "minSquareFeet=900&maxSquareFeet=100", "invalid squareFeet range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupSearchRouter()

			w := getPath(router, "/api/v1/listings/search?"+tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

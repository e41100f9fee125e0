package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	listingmodels "ke.kejani.api/internal/models/listing"
	neighborhoodmodels "ke.kejani.api/internal/models/list_neighborhoods"
)

// ListNeighborhoods returns the distinct neighborhoods of live listings, for
// the search form's autocomplete.
func (h *ListingsHandler) ListNeighborhoods(c *gin.Context) {
	ctx := context.Background()

	// Check Redis cache first
	cached, err := h.redis.Get(ctx, "neighborhoods").Result()
	if err == nil && cached != "" {
		var neighborhoods []string
		if err := json.Unmarshal([]byte(cached), &neighborhoods); err == nil {
			c.JSON(http.StatusOK, neighborhoodmodels.ListNeighborhoodsResponse{Neighborhoods: neighborhoods})
			return
		}
	}

	// Archived listings no longer advertise their neighborhood
	query := `
		SELECT DISTINCT neighborhood
		FROM listings
		WHERE status != $1
		ORDER BY neighborhood
	`
	rows, err := h.postgres.Query(ctx, query, listingmodels.StatusArchived)
	if err != nil {
		h.logError(c, err, "failed to fetch neighborhoods")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch neighborhoods"})
		return
	}
	defer rows.Close()

	neighborhoods := []string{}
	for rows.Next() {
		var neighborhood string
		if err := rows.Scan(&neighborhood); err != nil {
			h.logError(c, err, "failed to scan neighborhood")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch neighborhoods"})
			return
		}
		neighborhoods = append(neighborhoods, neighborhood)
	}

	// Cache for an hour; writers invalidate on create and status change
	if payload, err := json.Marshal(neighborhoods); err == nil {
		h.redis.Set(ctx, "neighborhoods", payload, time.Hour)
	}

	c.JSON(http.StatusOK, neighborhoodmodels.ListNeighborhoodsResponse{Neighborhoods: neighborhoods})
}

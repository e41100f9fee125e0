package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	listingmodels "ke.kejani.api/internal/models/listing"
	updatemodels "ke.kejani.api/internal/models/update_listing_status"
)

// UpdateListingStatus moves a listing between AVAILABLE, RENTED and ARCHIVED.
// Only the owning landlord can change a listing's status.
func (h *ListingsHandler) UpdateListingStatus(c *gin.Context) {
	var req updatemodels.UpdateListingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Get UID from context (set by auth middleware)
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userUID, ok := uid.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	// Validate required fields
	if req.ListingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}
	if !listingmodels.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be AVAILABLE, RENTED or ARCHIVED"})
		return
	}

	ctx := context.Background()

	// Verify ownership before updating
	var landlordUID string
	ownerQuery := `SELECT landlord_uid FROM listings WHERE id = $1`
	if err := h.postgres.QueryRow(ctx, ownerQuery, req.ListingID).Scan(&landlordUID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logError(c, err, "failed to load listing owner", "listingId", req.ListingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
		return
	}
	if landlordUID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another landlord's listing"})
		return
	}

	updateQuery := `
		UPDATE listings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := h.postgres.Exec(ctx, updateQuery, req.Status, req.ListingID); err != nil {
		h.logError(c, err, "failed to update listing status", "listingId", req.ListingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	// Re-read the full listing for the response and cache refresh
	listing, err := h.fetchListingWithDetails(ctx, req.ListingID)
	if err != nil {
		h.logError(c, err, "failed to reload listing", "listingId", req.ListingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload listing"})
		return
	}

	// Refresh caches; archiving can retire a neighborhood from the search form
	if listingJSON, err := json.Marshal(listing); err == nil {
		h.redis.Set(ctx, fmt.Sprintf("listing:%s", listing.ID), listingJSON, 24*time.Hour)
	}
	h.redis.Del(ctx, "neighborhoods")

	c.JSON(http.StatusOK, updatemodels.UpdateListingStatusResponse{Listing: *listing})
}

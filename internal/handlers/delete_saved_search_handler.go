package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	deletemodels "ke.kejani.api/internal/models/delete_saved_search"
)

// DeleteSavedSearch removes a saved search owned by the authenticated user.
func (h *SavedSearchesHandler) DeleteSavedSearch(c *gin.Context) {
	var req deletemodels.DeleteSavedSearchRequest
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

	if req.SearchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search ID is required"})
		return
	}

	ctx := context.Background()

	var ownerUID string
	if err := h.postgres.QueryRow(ctx, `SELECT user_uid FROM saved_searches WHERE id = $1`, req.SearchID).Scan(&ownerUID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Saved search not found"})
			return
		}
		h.logError(c, err, "failed to load saved search owner", "searchId", req.SearchID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved search"})
		return
	}
	if ownerUID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's saved search"})
		return
	}

	if _, err := h.postgres.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, req.SearchID); err != nil {
		h.logError(c, err, "failed to delete saved search", "searchId", req.SearchID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete saved search"})
		return
	}

	c.JSON(http.StatusOK, deletemodels.DeleteSavedSearchResponse{
		Success: true,
		Message: "Saved search deleted successfully",
	})
}

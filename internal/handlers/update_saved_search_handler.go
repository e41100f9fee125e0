package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	savedsearchmodels "ke.kejani.api/internal/models/savedsearch"
	updatemodels "ke.kejani.api/internal/models/update_saved_search"
	"ke.kejani.api/internal/search"
)

// UpdateSavedSearch replaces a saved search's name and criteria. There is no
// partial update: the request carries the full new state.
func (h *SavedSearchesHandler) UpdateSavedSearch(c *gin.Context) {
	var req updatemodels.UpdateSavedSearchRequest
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
	if req.SearchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search ID is required"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if err := req.Criteria.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	// Verify ownership before updating
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
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another user's saved search"})
		return
	}

	criteriaJSON, err := json.Marshal(req.Criteria)
	if err != nil {
		h.logError(c, err, "failed to marshal criteria")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update saved search"})
		return
	}

	var savedSearch savedsearchmodels.SavedSearch
	updateQuery := `
		UPDATE saved_searches
		SET name = $1, criteria = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, user_uid, name, created_at, updated_at
	`
	if err := h.postgres.QueryRow(ctx, updateQuery, req.Name, criteriaJSON, req.SearchID).Scan(
		&savedSearch.ID,
		&savedSearch.UserUID,
		&savedSearch.Name,
		&savedSearch.CreatedAt,
		&savedSearch.UpdatedAt,
	); err != nil {
		h.logError(c, err, "failed to update saved search", "searchId", req.SearchID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update saved search"})
		return
	}
	savedSearch.Criteria = req.Criteria

	response := updatemodels.UpdateSavedSearchResponse{
		SavedSearch: savedSearch,
		QueryString: search.QueryString(req.Criteria),
		Summary:     req.Criteria.Summary(),
	}

	c.JSON(http.StatusOK, response)
}

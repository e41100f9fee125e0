package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	listmodels "ke.kejani.api/internal/models/list_saved_searches"
	savedsearchmodels "ke.kejani.api/internal/models/savedsearch"
	"ke.kejani.api/internal/search"
)

// ListSavedSearches returns the caller's saved searches, newest first, each
// with its canonical query string and summary descriptors.
func (h *SavedSearchesHandler) ListSavedSearches(c *gin.Context) {
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

	ctx := context.Background()

	searches, err := h.fetchSavedSearches(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to fetch saved searches", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved searches"})
		return
	}

	views := make([]listmodels.SavedSearchView, 0, len(searches))
	for _, savedSearch := range searches {
		views = append(views, listmodels.SavedSearchView{
			SavedSearch: savedSearch,
			QueryString: search.QueryString(savedSearch.Criteria),
			Summary:     savedSearch.Criteria.Summary(),
		})
	}

	response := listmodels.ListSavedSearchesResponse{
		Searches:   views,
		TotalCount: len(views),
	}

	c.JSON(http.StatusOK, response)
}

// fetchSavedSearches loads a user's saved searches, newest first.
func (h *SavedSearchesHandler) fetchSavedSearches(ctx context.Context, userUID string) ([]savedsearchmodels.SavedSearch, error) {
	query := `
		SELECT id, user_uid, name, criteria, created_at, updated_at
		FROM saved_searches
		WHERE user_uid = $1
		ORDER BY created_at DESC
	`
	rows, err := h.postgres.Query(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved searches: %w", err)
	}
	defer rows.Close()

	searches := []savedsearchmodels.SavedSearch{}
	for rows.Next() {
		var savedSearch savedsearchmodels.SavedSearch
		if err := rows.Scan(
			&savedSearch.ID,
			&savedSearch.UserUID,
			&savedSearch.Name,
			&savedSearch.Criteria,
			&savedSearch.CreatedAt,
			&savedSearch.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved search: %w", err)
		}
		searches = append(searches, savedSearch)
	}

	return searches, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	savemodels "ke.kejani.api/internal/models/save_search"
	savedsearchmodels "ke.kejani.api/internal/models/savedsearch"
	"ke.kejani.api/internal/search"
)

type SavedSearchesHandler struct {
	postgres *pgxpool.Pool
	logger   *zap.SugaredLogger
}

// NewSavedSearchesHandler creates a new saved-searches handler
func NewSavedSearchesHandler(postgres *pgxpool.Pool, logger *zap.SugaredLogger) *SavedSearchesHandler {
	return &SavedSearchesHandler{
		postgres: postgres,
		logger:   logger,
	}
}

// SaveSearch stores a named search. Criteria are validated before anything
// is persisted; the response carries the canonical query string and the
// summary descriptors the search pages render.
func (h *SavedSearchesHandler) SaveSearch(c *gin.Context) {
	var req savemodels.SaveSearchRequest
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

	// Generate new search ID
	searchID := uuid.New().String()
	now := time.Now()

	criteriaJSON, err := json.Marshal(req.Criteria)
	if err != nil {
		h.logError(c, err, "failed to marshal criteria")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search"})
		return
	}

	insertQuery := `
		INSERT INTO saved_searches (id, user_uid, name, criteria, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := h.postgres.Exec(ctx, insertQuery, searchID, userUID, req.Name, criteriaJSON, now, now); err != nil {
		h.logError(c, err, "failed to insert saved search", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search"})
		return
	}

	savedSearch := savedsearchmodels.SavedSearch{
		ID:        searchID,
		UserUID:   userUID,
		Name:      req.Name,
		Criteria:  req.Criteria,
		CreatedAt: now,
		UpdatedAt: now,
	}

	response := savemodels.SaveSearchResponse{
		SavedSearch: savedSearch,
		QueryString: search.QueryString(req.Criteria),
		Summary:     req.Criteria.Summary(),
	}

	c.JSON(http.StatusCreated, response)
}

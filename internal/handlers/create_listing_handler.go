package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	createmodels "ke.kejani.api/internal/models/create_listing"
	listingmodels "ke.kejani.api/internal/models/listing"
	usermodels "ke.kejani.api/internal/models/account"
	"ke.kejani.api/internal/search"
)

type ListingsHandler struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	logger   *zap.SugaredLogger
}

// NewListingsHandler creates a new listings handler
func NewListingsHandler(postgres *pgxpool.Pool, redis *redis.Client, logger *zap.SugaredLogger) *ListingsHandler {
	return &ListingsHandler{
		postgres: postgres,
		redis:    redis,
		logger:   logger,
	}
}

// CreateListing handles creation of new rental listings
func (h *ListingsHandler) CreateListing(c *gin.Context) {
	var req createmodels.CreateListingRequest
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
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if strings.TrimSpace(req.Neighborhood) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Neighborhood is required"})
		return
	}
	propertyType, ok := search.ParsePropertyType(req.PropertyType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown property type"})
		return
	}
	if req.MonthlyRent < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monthly rent must not be negative"})
		return
	}
	if req.SquareFeet < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Square feet must not be negative"})
		return
	}

	ctx := context.Background()

	// Only landlords can publish listings
	var role string
	if err := h.postgres.QueryRow(ctx, `SELECT role FROM users WHERE uid = $1`, userUID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		h.logError(c, err, "failed to load user role", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user role"})
		return
	}
	if role != usermodels.RoleLandlord {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only landlords can create listings"})
		return
	}

	// Generate new listing ID
	listingID := uuid.New().String()
	now := time.Now()

	// Create listing object
	listing := &listingmodels.Listing{
		ID:           listingID,
		LandlordUID:  userUID,
		Title:        req.Title,
		Description:  req.Description,
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		PropertyType: propertyType,
		MonthlyRent:  req.MonthlyRent,
		SquareFeet:   req.SquareFeet,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Status:       listingmodels.StatusAvailable,
		Photos:       req.Photos,
		Amenities:    req.Amenities,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Start database transaction
	tx, err := h.postgres.Begin(ctx)
	if err != nil {
		h.logError(c, err, "failed to start transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start database transaction"})
		return
	}
	defer tx.Rollback(ctx)

	// Insert listing into PostgreSQL
	listingQuery := `
		INSERT INTO listings (id, landlord_uid, title, description, neighborhood, property_type, monthly_rent, square_feet, bedrooms, bathrooms, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.Exec(ctx, listingQuery,
		listingID,
		userUID,
		listing.Title,
		listing.Description,
		listing.Neighborhood,
		string(listing.PropertyType),
		listing.MonthlyRent,
		listing.SquareFeet,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.Status,
		now,
		now,
	)
	if err != nil {
		h.logError(c, err, "failed to insert listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	// Insert photos if provided
	if len(req.Photos) > 0 {
		for i, photoURL := range req.Photos {
			photoQuery := `
				INSERT INTO listing_photos (listing_id, url, upload_order, created_at)
				VALUES ($1, $2, $3, $4)
			`
			_, err = tx.Exec(ctx, photoQuery, listingID, photoURL, i, now)
			if err != nil {
				h.logError(c, err, "failed to insert listing photo")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo data"})
				return
			}
		}
	}

	// Insert amenities if provided
	if len(req.Amenities) > 0 {
		for _, amenity := range req.Amenities {
			amenity = strings.TrimSpace(amenity)
			if amenity == "" {
				continue
			}
			amenityQuery := `
				INSERT INTO listing_amenities (listing_id, name, created_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (listing_id, name) DO NOTHING
			`
			_, err = tx.Exec(ctx, amenityQuery, listingID, amenity, now)
			if err != nil {
				h.logError(c, err, "failed to insert listing amenity")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save amenity data"})
				return
			}
		}
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		h.logError(c, err, "failed to commit listing transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
		return
	}

	// Cache listing in Redis
	listingJSON, err := json.Marshal(listing)
	if err != nil {
		// Log error but don't fail the request since the listing was saved
		h.logger.Warnw("failed to marshal listing for cache", "listingId", listingID, "error", err)
	} else {
		redisKey := fmt.Sprintf("listing:%s", listingID)
		if err := h.redis.Set(ctx, redisKey, listingJSON, 24*time.Hour).Err(); err != nil {
			h.logger.Warnw("failed to cache listing", "listingId", listingID, "error", err)
		}
	}

	// A new listing may introduce a new neighborhood
	h.redis.Del(ctx, "neighborhoods")

	// Create response
	response := createmodels.CreateListingResponse{Listing: *listing}

	c.JSON(http.StatusCreated, response)
}

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

	getlistingmodels "ke.kejani.api/internal/models/get_listing"
	listingmodels "ke.kejani.api/internal/models/listing"
)

var errListingNotFound = errors.New("listing not found")

// GetListing handles fetching a specific listing with photos and amenities
func (h *ListingsHandler) GetListing(c *gin.Context) {
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}

	ctx := context.Background()

	// Check Redis cache first
	redisKey := fmt.Sprintf("listing:%s", listingID)
	cachedListing, err := h.redis.Get(ctx, redisKey).Result()
	if err == nil && cachedListing != "" {
		var listing listingmodels.Listing
		if err := json.Unmarshal([]byte(cachedListing), &listing); err == nil {
			c.JSON(http.StatusOK, getlistingmodels.GetListingResponse{Listing: listing})
			return
		}
	}

	// Fetch listing from database
	listing, err := h.fetchListingWithDetails(ctx, listingID)
	if err != nil {
		if errors.Is(err, errListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logError(c, err, "failed to fetch listing", "listingId", listingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
		return
	}

	// Cache the listing in Redis
	listingJSON, err := json.Marshal(listing)
	if err == nil {
		h.redis.Set(ctx, redisKey, listingJSON, 24*time.Hour)
	}

	c.JSON(http.StatusOK, getlistingmodels.GetListingResponse{Listing: *listing})
}

// fetchListingWithDetails retrieves a listing with its photos and amenities
func (h *ListingsHandler) fetchListingWithDetails(ctx context.Context, listingID string) (*listingmodels.Listing, error) {
	var listing listingmodels.Listing
	listingQuery := `
		SELECT id, landlord_uid, title, description, neighborhood, property_type, monthly_rent, square_feet, bedrooms, bathrooms, status, created_at, updated_at
		FROM listings
		WHERE id = $1
	`
	err := h.postgres.QueryRow(ctx, listingQuery, listingID).Scan(
		&listing.ID,
		&listing.LandlordUID,
		&listing.Title,
		&listing.Description,
		&listing.Neighborhood,
		&listing.PropertyType,
		&listing.MonthlyRent,
		&listing.SquareFeet,
		&listing.Bedrooms,
		&listing.Bathrooms,
		&listing.Status,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errListingNotFound
		}
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	// Initialize slices
	listing.Photos = []string{}
	listing.Amenities = []string{}

	// Fetch photos
	photosQuery := `
		SELECT url FROM listing_photos WHERE listing_id = $1 ORDER BY upload_order
	`
	photoRows, err := h.postgres.Query(ctx, photosQuery, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photos: %w", err)
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var photoURL string
		if err := photoRows.Scan(&photoURL); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		listing.Photos = append(listing.Photos, photoURL)
	}

	// Fetch amenities
	amenitiesQuery := `
		SELECT name FROM listing_amenities WHERE listing_id = $1 ORDER BY name
	`
	amenityRows, err := h.postgres.Query(ctx, amenitiesQuery, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch amenities: %w", err)
	}
	defer amenityRows.Close()

	for amenityRows.Next() {
		var amenity string
		if err := amenityRows.Scan(&amenity); err != nil {
			return nil, fmt.Errorf("failed to scan amenity: %w", err)
		}
		listing.Amenities = append(listing.Amenities, amenity)
	}

	return &listing, nil
}

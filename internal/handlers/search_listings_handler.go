package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	listingmodels "ke.kejani.api/internal/models/listing"
	searchmodels "ke.kejani.api/internal/models/search_listings"
	"ke.kejani.api/internal/search"
)

// SearchListings handles the public listing search. Criteria arrive as query
// parameters in the canonical serialized form; malformed or inconsistent
// criteria are rejected before any database work.
func (h *ListingsHandler) SearchListings(c *gin.Context) {
	criteria, err := search.DecodeQuery(c.Request.URL.Query())
	if err != nil {
		var parseErr *search.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search criteria"})
		return
	}
	if err := criteria.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Parse pagination parameters
	page := 1
	limit := 20
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	// Free-text term, searched across title, description and neighborhood
	searchQuery := strings.TrimSpace(c.Query("q"))

	ctx := context.Background()

	listings, total, err := h.searchListingsWithCriteria(ctx, criteria, searchQuery, page, limit)
	if err != nil {
		h.logError(c, err, "listing search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	// Calculate pagination
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	hasNext := page < totalPages
	hasPrevious := page > 1

	response := searchmodels.SearchListingsResponse{
		Listings:    listings,
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNext:     hasNext,
		HasPrevious: hasPrevious,
		QueryString: search.QueryString(criteria),
		Summary:     criteria.Summary(),
	}

	c.JSON(http.StatusOK, response)
}

// searchListingsWithCriteria translates the criteria into a dynamic WHERE
// clause and returns one page of matching listings with photos and amenities.
func (h *ListingsHandler) searchListingsWithCriteria(ctx context.Context, criteria search.Criteria, searchQuery string, page, limit int) ([]listingmodels.Listing, int, error) {
	// Search only surfaces available units
	whereConditions := []string{"l.status = $1"}
	args := []interface{}{listingmodels.StatusAvailable}
	argCounter := 2

	if criteria.Neighborhood != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("LOWER(l.neighborhood) = LOWER($%d)", argCounter))
		args = append(args, *criteria.Neighborhood)
		argCounter++
	}
	if criteria.MinRent != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("l.monthly_rent >= $%d", argCounter))
		args = append(args, *criteria.MinRent)
		argCounter++
	}
	if criteria.MaxRent != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("l.monthly_rent <= $%d", argCounter))
		args = append(args, *criteria.MaxRent)
		argCounter++
	}
	if criteria.PropertyType != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("l.property_type = $%d", argCounter))
		args = append(args, string(*criteria.PropertyType))
		argCounter++
	}
	if criteria.MinSquareFeet != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("l.square_feet >= $%d", argCounter))
		args = append(args, *criteria.MinSquareFeet)
		argCounter++
	}
	if criteria.MaxSquareFeet != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("l.square_feet <= $%d", argCounter))
		args = append(args, *criteria.MaxSquareFeet)
		argCounter++
	}

	// Add free-text search condition
	if searchQuery != "" {
		searchCondition := fmt.Sprintf(`(
			l.title ILIKE $%d OR
			l.description ILIKE $%d OR
			l.neighborhood ILIKE $%d
		)`, argCounter, argCounter, argCounter)
		whereConditions = append(whereConditions, searchCondition)
		searchTerm := "%" + searchQuery + "%"
		args = append(args, searchTerm)
		argCounter++
	}

	whereClause := "WHERE " + strings.Join(whereConditions, " AND ")

	// Count total matches
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM listings l
		%s
	`, whereClause)

	var total int
	if err := h.postgres.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	// Calculate offset
	offset := (page - 1) * limit

	listingsQuery := fmt.Sprintf(`
		SELECT l.id, l.landlord_uid, l.title, l.description, l.neighborhood, l.property_type, l.monthly_rent, l.square_feet, l.bedrooms, l.bathrooms, l.status, l.created_at, l.updated_at
		FROM listings l
		%s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argCounter, argCounter+1)

	args = append(args, limit, offset)

	rows, err := h.postgres.Query(ctx, listingsQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listingIDs []string
	listingMap := make(map[string]*listingmodels.Listing)

	for rows.Next() {
		var listing listingmodels.Listing
		if err := rows.Scan(
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
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan listing: %w", err)
		}

		// Initialize slices
		listing.Photos = []string{}
		listing.Amenities = []string{}

		listingIDs = append(listingIDs, listing.ID)
		listingMap[listing.ID] = &listing
	}

	// Fetch related data for all listings on the page
	if len(listingIDs) > 0 {
		if err := h.fetchRelatedDataForListings(ctx, listingIDs, listingMap); err != nil {
			return nil, 0, fmt.Errorf("failed to fetch related data: %w", err)
		}
	}

	// Convert map to slice maintaining order
	listings := make([]listingmodels.Listing, 0, len(listingIDs))
	for _, listingID := range listingIDs {
		if listing, exists := listingMap[listingID]; exists {
			listings = append(listings, *listing)
		}
	}

	return listings, total, nil
}

// fetchRelatedDataForListings efficiently fetches photos and amenities for multiple listings
func (h *ListingsHandler) fetchRelatedDataForListings(ctx context.Context, listingIDs []string, listingMap map[string]*listingmodels.Listing) error {
	if len(listingIDs) == 0 {
		return nil
	}

	// Create placeholders for IN clause
	placeholders := make([]string, len(listingIDs))
	args := make([]interface{}, len(listingIDs))
	for i, id := range listingIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	inClause := strings.Join(placeholders, ",")

	// Fetch photos
	photosQuery := fmt.Sprintf(`
		SELECT listing_id, url FROM listing_photos
		WHERE listing_id IN (%s)
		ORDER BY listing_id, upload_order
	`, inClause)

	photoRows, err := h.postgres.Query(ctx, photosQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to fetch photos: %w", err)
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var listingID, photoURL string
		if err := photoRows.Scan(&listingID, &photoURL); err != nil {
			return fmt.Errorf("failed to scan photo: %w", err)
		}
		if listing, exists := listingMap[listingID]; exists {
			listing.Photos = append(listing.Photos, photoURL)
		}
	}

	// Fetch amenities
	amenitiesQuery := fmt.Sprintf(`
		SELECT listing_id, name FROM listing_amenities
		WHERE listing_id IN (%s)
		ORDER BY listing_id, name
	`, inClause)

	amenityRows, err := h.postgres.Query(ctx, amenitiesQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to fetch amenities: %w", err)
	}
	defer amenityRows.Close()

	for amenityRows.Next() {
		var listingID, amenity string
		if err := amenityRows.Scan(&listingID, &amenity); err != nil {
			return fmt.Errorf("failed to scan amenity: %w", err)
		}
		if listing, exists := listingMap[listingID]; exists {
			listing.Amenities = append(listing.Amenities, amenity)
		}
	}

	return nil
}

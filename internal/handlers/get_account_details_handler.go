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

	getdetailsmodels "ke.kejani.api/internal/models/get_account_details"
	usermodels "ke.kejani.api/internal/models/account"
)

// GetAccountDetails returns the authenticated user's account and usage details
func (h *AuthHandler) GetAccountDetails(c *gin.Context) {
	// Ensure user is authenticated (middleware populates context)
	uidCtx, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid, ok := uidCtx.(string)
	if !ok || uid == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	ctx := context.Background()

	// Attempt Redis cache first
	cacheKey := fmt.Sprintf("account_details:%s", uid)
	if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		var resp getdetailsmodels.GetAccountDetailsResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// Fetch base user data
	var (
		displayName   string
		email         string
		phoneNumber   string
		role          string
		emailVerified bool
		createdAt     time.Time
		updatedAt     time.Time
	)

	userQuery := `
		SELECT display_name, email, phone_number, role, email_verified, created_at, updated_at
		FROM users
		WHERE uid = $1
	`
	if err := h.postgres.QueryRow(ctx, userQuery, uid).Scan(
		&displayName,
		&email,
		&phoneNumber,
		&role,
		&emailVerified,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logError(c, err, "failed to fetch user row", "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	// Fetch aggregate counts. Inquiries count from whichever side of the
	// conversation this account sits on.
	inquiryColumn := "tenant_uid"
	if role == usermodels.RoleLandlord {
		inquiryColumn = "landlord_uid"
	}

	var (
		totalListings      int
		totalInquiries     int
		totalDocuments     int
		totalPayments      int
		totalSavedSearches int
	)
	countsQuery := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM listings l WHERE l.landlord_uid = $1) AS total_listings,
			(SELECT COUNT(*) FROM inquiries i WHERE i.%s = $1) AS total_inquiries,
			(SELECT COUNT(*) FROM documents d WHERE d.owner_uid = $1) AS total_documents,
			(SELECT COUNT(*) FROM payments p WHERE p.payer_uid = $1) AS total_payments,
			(SELECT COUNT(*) FROM saved_searches s WHERE s.user_uid = $1) AS total_saved_searches
	`, inquiryColumn)
	if err := h.postgres.QueryRow(ctx, countsQuery, uid).Scan(
		&totalListings,
		&totalInquiries,
		&totalDocuments,
		&totalPayments,
		&totalSavedSearches,
	); err != nil {
		h.logError(c, err, "failed to compute account aggregates", "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute aggregates"})
		return
	}

	// Assemble response
	resp := getdetailsmodels.GetAccountDetailsResponse{
		UID:                uid,
		DisplayName:        displayName,
		Email:              email,
		PhoneNumber:        phoneNumber,
		Role:               role,
		EmailVerified:      emailVerified,
		AccountCreatedAt:   createdAt,
		AccountUpdatedAt:   updatedAt,
		TotalListings:      totalListings,
		TotalInquiries:     totalInquiries,
		TotalDocuments:     totalDocuments,
		TotalPayments:      totalPayments,
		TotalSavedSearches: totalSavedSearches,
	}

	// Cache response for a short period
	if payload, err := json.Marshal(resp); err == nil {
		_ = h.redis.Set(ctx, cacheKey, payload, 10*time.Minute).Err()
	}

	c.JSON(http.StatusOK, resp)
}

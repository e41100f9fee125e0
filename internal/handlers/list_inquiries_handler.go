package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ke.kejani.api/internal/filter"
	usermodels "ke.kejani.api/internal/models/account"
	inquirymodels "ke.kejani.api/internal/models/inquiry"
	listmodels "ke.kejani.api/internal/models/list_inquiries"
)

// ListInquiries returns the caller's inquiries: a tenant sees the ones they
// opened, a landlord the ones against their listings. Status and free-text
// filters are applied in memory after the role-scoped fetch.
func (h *InquiriesHandler) ListInquiries(c *gin.Context) {
	// An empty or missing body means no filters
	var req listmodels.ListInquiriesRequest
	_ = c.ShouldBindJSON(&req)

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

	if req.Status != "" && !inquirymodels.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be PENDING, RESPONDED or CLOSED"})
		return
	}

	ctx := context.Background()

	inquiries, err := h.fetchInquiriesForUser(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to fetch inquiries", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	inquiries = applyInquiryFilters(inquiries, req.Status, req.Query)

	response := listmodels.ListInquiriesResponse{
		Inquiries:  inquiries,
		TotalCount: len(inquiries),
	}

	c.JSON(http.StatusOK, response)
}

// applyInquiryFilters narrows inquiries by status and free text while
// preserving their order.
func applyInquiryFilters(inquiries []inquirymodels.Inquiry, status, query string) []inquirymodels.Inquiry {
	inquiries = filter.ByStatus(inquiries, status, func(i inquirymodels.Inquiry) string { return i.Status })
	inquiries = filter.ByText(inquiries, query,
		func(i inquirymodels.Inquiry) string { return i.Message },
		func(i inquirymodels.Inquiry) string { return i.Response },
		func(i inquirymodels.Inquiry) string { return i.ListingTitle },
	)
	return inquiries
}

// fetchInquiriesForUser loads all inquiries on the caller's side of the
// conversation, newest first, with listing titles joined in.
func (h *InquiriesHandler) fetchInquiriesForUser(ctx context.Context, userUID string) ([]inquirymodels.Inquiry, error) {
	var role string
	if err := h.postgres.QueryRow(ctx, `SELECT role FROM users WHERE uid = $1`, userUID).Scan(&role); err != nil {
		return nil, fmt.Errorf("failed to load user role: %w", err)
	}

	scopeColumn := "i.tenant_uid"
	if role == usermodels.RoleLandlord {
		scopeColumn = "i.landlord_uid"
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.listing_id, l.title, i.tenant_uid, i.landlord_uid, i.message, COALESCE(i.response, ''), i.status, COALESCE(i.channel_id, ''), i.created_at, i.updated_at
		FROM inquiries i
		JOIN listings l ON l.id = i.listing_id
		WHERE %s = $1
		ORDER BY i.created_at DESC
	`, scopeColumn)

	rows, err := h.postgres.Query(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []inquirymodels.Inquiry{}
	for rows.Next() {
		var inquiry inquirymodels.Inquiry
		if err := rows.Scan(
			&inquiry.ID,
			&inquiry.ListingID,
			&inquiry.ListingTitle,
			&inquiry.TenantUID,
			&inquiry.LandlordUID,
			&inquiry.Message,
			&inquiry.Response,
			&inquiry.Status,
			&inquiry.ChannelID,
			&inquiry.CreatedAt,
			&inquiry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	return inquiries, nil
}

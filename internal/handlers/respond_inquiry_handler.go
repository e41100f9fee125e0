package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	inquirymodels "ke.kejani.api/internal/models/inquiry"
	respondmodels "ke.kejani.api/internal/models/respond_inquiry"
)

// RespondInquiry records the landlord's reply and moves the inquiry to
// RESPONDED. The reply is mirrored into the Stream channel when one exists.
func (h *InquiriesHandler) RespondInquiry(c *gin.Context) {
	var req respondmodels.RespondInquiryRequest
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
	if req.InquiryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Inquiry ID is required"})
		return
	}
	if strings.TrimSpace(req.Response) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Response text is required"})
		return
	}

	ctx := context.Background()

	inquiry, err := h.loadInquiry(ctx, req.InquiryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
			return
		}
		h.logError(c, err, "failed to load inquiry", "inquiryId", req.InquiryID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiry"})
		return
	}

	// Only the listing's landlord can respond
	if inquiry.LandlordUID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the landlord can respond to this inquiry"})
		return
	}
	if inquiry.Status == inquirymodels.StatusClosed {
		c.JSON(http.StatusConflict, gin.H{"error": "Inquiry is already closed"})
		return
	}

	updateQuery := `
		UPDATE inquiries
		SET response = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	if err := h.postgres.QueryRow(ctx, updateQuery, req.Response, inquirymodels.StatusResponded, req.InquiryID).Scan(&inquiry.UpdatedAt); err != nil {
		h.logError(c, err, "failed to update inquiry", "inquiryId", req.InquiryID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		return
	}

	inquiry.Response = req.Response
	inquiry.Status = inquirymodels.StatusResponded

	// Mirror the reply into the conversation channel
	if h.chat != nil && inquiry.ChannelID != "" {
		if err := h.chat.SendMessage(ctx, inquiry.ChannelID, userUID, req.Response); err != nil {
			h.logger.Warnw("failed to mirror response into channel", "inquiryId", req.InquiryID, "error", err)
		}
	}

	c.JSON(http.StatusOK, respondmodels.RespondInquiryResponse{Inquiry: *inquiry})
}

// loadInquiry fetches a single inquiry row with its listing title.
func (h *InquiriesHandler) loadInquiry(ctx context.Context, inquiryID string) (*inquirymodels.Inquiry, error) {
	var inquiry inquirymodels.Inquiry
	query := `
		SELECT i.id, i.listing_id, l.title, i.tenant_uid, i.landlord_uid, i.message, COALESCE(i.response, ''), i.status, COALESCE(i.channel_id, ''), i.created_at, i.updated_at
		FROM inquiries i
		JOIN listings l ON l.id = i.listing_id
		WHERE i.id = $1
	`
	err := h.postgres.QueryRow(ctx, query, inquiryID).Scan(
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
	)
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

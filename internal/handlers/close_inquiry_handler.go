package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	closemodels "ke.kejani.api/internal/models/close_inquiry"
	inquirymodels "ke.kejani.api/internal/models/inquiry"
)

// CloseInquiry ends the conversation. Either participant can close; closing
// is terminal and idempotent.
func (h *InquiriesHandler) CloseInquiry(c *gin.Context) {
	var req closemodels.CloseInquiryRequest
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

	// Both sides of the conversation may close it
	if inquiry.TenantUID != userUID && inquiry.LandlordUID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot close another user's inquiry"})
		return
	}

	if inquiry.Status != inquirymodels.StatusClosed {
		updateQuery := `
			UPDATE inquiries
			SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING updated_at
		`
		if err := h.postgres.QueryRow(ctx, updateQuery, inquirymodels.StatusClosed, req.InquiryID).Scan(&inquiry.UpdatedAt); err != nil {
			h.logError(c, err, "failed to close inquiry", "inquiryId", req.InquiryID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close inquiry"})
			return
		}
		inquiry.Status = inquirymodels.StatusClosed
	}

	c.JSON(http.StatusOK, closemodels.CloseInquiryResponse{Inquiry: *inquiry})
}

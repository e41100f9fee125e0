package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ke.kejani.api/internal/filter"
	inquirymodels "ke.kejani.api/internal/models/inquiry"
	countsmodels "ke.kejani.api/internal/models/inquiry_counts"
)

// InquiryCounts tallies the caller's inquiries per status for the dashboard.
// Every status appears in the response, zero when nothing carries it.
func (h *InquiriesHandler) InquiryCounts(c *gin.Context) {
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

	inquiries, err := h.fetchInquiriesForUser(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to fetch inquiries", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}

	counts := filter.CountByStatus(inquiries,
		func(i inquirymodels.Inquiry) string { return i.Status },
		inquirymodels.Statuses...,
	)

	c.JSON(http.StatusOK, countsmodels.InquiryCountsResponse{Counts: counts})
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ke.kejani.api/internal/chat"
	createmodels "ke.kejani.api/internal/models/create_inquiry"
	inquirymodels "ke.kejani.api/internal/models/inquiry"
	listingmodels "ke.kejani.api/internal/models/listing"
	"ke.kejani.api/internal/notify"
)

type InquiriesHandler struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	chat     *chat.Client
	notifier *notify.Notifier
	logger   *zap.SugaredLogger
}

// NewInquiriesHandler creates a new inquiries handler. The chat client and
// notifier may be nil when Stream or AWS credentials are absent; inquiry
// conversations and landlord emails are then skipped.
func NewInquiriesHandler(postgres *pgxpool.Pool, redis *redis.Client, chatClient *chat.Client, notifier *notify.Notifier, logger *zap.SugaredLogger) *InquiriesHandler {
	return &InquiriesHandler{
		postgres: postgres,
		redis:    redis,
		chat:     chatClient,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateInquiry lets a tenant ask about a listing. The inquiry row is the
// source of truth; the Stream channel and the landlord email are best-effort
// side effects.
func (h *InquiriesHandler) CreateInquiry(c *gin.Context) {
	var req createmodels.CreateInquiryRequest
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

	tenantUID, ok := uid.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	// Validate required fields
	if req.ListingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing ID is required"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	ctx := context.Background()

	// Load the listing being asked about
	var (
		landlordUID   string
		listingTitle  string
		listingStatus string
	)
	listingQuery := `SELECT landlord_uid, title, status FROM listings WHERE id = $1`
	if err := h.postgres.QueryRow(ctx, listingQuery, req.ListingID).Scan(&landlordUID, &listingTitle, &listingStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logError(c, err, "failed to load listing", "listingId", req.ListingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
		return
	}
	if listingStatus == listingmodels.StatusArchived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Listing is no longer available"})
		return
	}
	if landlordUID == tenantUID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot inquire about your own listing"})
		return
	}

	// Generate new inquiry ID
	inquiryID := uuid.New().String()
	now := time.Now()

	inquiry := &inquirymodels.Inquiry{
		ID:           inquiryID,
		ListingID:    req.ListingID,
		ListingTitle: listingTitle,
		TenantUID:    tenantUID,
		LandlordUID:  landlordUID,
		Message:      req.Message,
		Status:       inquirymodels.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	insertQuery := `
		INSERT INTO inquiries (id, listing_id, tenant_uid, landlord_uid, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := h.postgres.Exec(ctx, insertQuery,
		inquiryID,
		req.ListingID,
		tenantUID,
		landlordUID,
		req.Message,
		inquirymodels.StatusPending,
		now,
		now,
	)
	if err != nil {
		h.logError(c, err, "failed to insert inquiry", "listingId", req.ListingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inquiry"})
		return
	}

	// Open a conversation channel for the tenant and landlord
	if h.chat != nil {
		channelID, err := h.chat.CreateInquiryChannel(ctx, inquiryID, tenantUID, landlordUID, listingTitle, req.Message)
		if err != nil {
			h.logger.Warnw("failed to open inquiry channel", "inquiryId", inquiryID, "error", err)
		} else {
			inquiry.ChannelID = channelID
			if _, err := h.postgres.Exec(ctx, `UPDATE inquiries SET channel_id = $1 WHERE id = $2`, channelID, inquiryID); err != nil {
				h.logger.Warnw("failed to store inquiry channel id", "inquiryId", inquiryID, "error", err)
			}
		}
	}

	// Email the landlord about the new inquiry
	if h.notifier != nil {
		var landlordEmail, tenantName string
		contactQuery := `
			SELECT
				(SELECT email FROM users WHERE uid = $1),
				(SELECT display_name FROM users WHERE uid = $2)
		`
		if err := h.postgres.QueryRow(ctx, contactQuery, landlordUID, tenantUID).Scan(&landlordEmail, &tenantName); err != nil {
			h.logger.Warnw("failed to load inquiry contacts", "inquiryId", inquiryID, "error", err)
		} else if landlordEmail != "" {
			subject, body := notify.InquiryEmail(listingTitle, tenantName, req.Message)
			if err := h.notifier.SendEmail(ctx, landlordEmail, subject, body); err != nil {
				h.logger.Warnw("failed to email landlord", "inquiryId", inquiryID, "error", err)
			}
		}
	}

	c.JSON(http.StatusCreated, createmodels.CreateInquiryResponse{Inquiry: *inquiry})
}

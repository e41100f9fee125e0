package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ke.kejani.api/internal/metrics"
	initiatemodels "ke.kejani.api/internal/models/initiate_payment"
	paymentmodels "ke.kejani.api/internal/models/payment"
	"ke.kejani.api/internal/mpesa"
	"ke.kejani.api/internal/notify"
)

type PaymentsHandler struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	mpesa    *mpesa.Client
	notifier *notify.Notifier
	logger   *zap.SugaredLogger
}

// NewPaymentsHandler creates a new payments handler. The M-Pesa client is
// nil when Daraja credentials are absent; payment initiation then answers
// 503 while listing and export keep working.
func NewPaymentsHandler(postgres *pgxpool.Pool, redisClient *redis.Client, mpesaClient *mpesa.Client, notifier *notify.Notifier, logger *zap.SugaredLogger) *PaymentsHandler {
	return &PaymentsHandler{
		postgres: postgres,
		redis:    redisClient,
		mpesa:    mpesaClient,
		notifier: notifier,
		logger:   logger,
	}
}

// InitiatePayment starts an M-Pesa STK push for rent or deposit. The payment
// row is created PENDING; the Daraja callback settles it.
func (h *PaymentsHandler) InitiatePayment(c *gin.Context) {
	var req initiatemodels.InitiatePaymentRequest
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
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}
	phone, err := mpesa.NormalizePhone(req.PhoneNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	if h.mpesa == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not available"})
		return
	}

	ctx := context.Background()

	// A listing reference, when given, must exist
	if req.ListingID != "" {
		var listingExists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`
		if err := h.postgres.QueryRow(ctx, checkQuery, req.ListingID).Scan(&listingExists); err != nil {
			h.logError(c, err, "failed to verify listing", "listingId", req.ListingID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify listing"})
			return
		}
		if !listingExists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
	}

	accountReference := req.AccountReference
	if accountReference == "" {
		accountReference = "KEJANI"
	}

	// Ask Daraja to prompt the subscriber
	stkResp, err := h.mpesa.STKPush(ctx, phone, req.Amount, accountReference, "Kejani rent payment")
	if err != nil {
		metrics.StkPushesTotal.WithLabelValues("rejected").Inc()
		h.logError(c, err, "stk push failed", "uid", userUID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment request was not accepted"})
		return
	}
	metrics.StkPushesTotal.WithLabelValues("accepted").Inc()

	// Record the pending payment
	paymentID := uuid.New().String()
	now := time.Now()

	payment := &paymentmodels.Payment{
		ID:                paymentID,
		PayerUID:          userUID,
		ListingID:         req.ListingID,
		Amount:            req.Amount,
		PhoneNumber:       phone,
		AccountReference:  accountReference,
		MerchantRequestID: stkResp.MerchantRequestID,
		CheckoutRequestID: stkResp.CheckoutRequestID,
		Status:            paymentmodels.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	insertQuery := `
		INSERT INTO payments (id, payer_uid, listing_id, amount, phone_number, account_reference, merchant_request_id, checkout_request_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = h.postgres.Exec(ctx, insertQuery,
		paymentID,
		userUID,
		nullableID(req.ListingID),
		req.Amount,
		phone,
		accountReference,
		stkResp.MerchantRequestID,
		stkResp.CheckoutRequestID,
		paymentmodels.StatusPending,
		now,
		now,
	)
	if err != nil {
		h.logError(c, err, "failed to insert payment row", "checkoutRequestId", stkResp.CheckoutRequestID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	// Mirror the pending payment so the app can poll without hitting Postgres
	if paymentJSON, err := json.Marshal(payment); err == nil {
		h.redis.Set(ctx, "payment:"+stkResp.CheckoutRequestID, paymentJSON, 24*time.Hour)
	}

	response := initiatemodels.InitiatePaymentResponse{
		Payment:         *payment,
		CustomerMessage: stkResp.CustomerMessage,
	}

	c.JSON(http.StatusAccepted, response)
}

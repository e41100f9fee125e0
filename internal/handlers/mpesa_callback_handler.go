package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"ke.kejani.api/internal/metrics"
	paymentmodels "ke.kejani.api/internal/models/payment"
	"ke.kejani.api/internal/mpesa"
	"ke.kejani.api/internal/notify"
)

// MpesaCallback settles a pending payment from Daraja's result post. The
// endpoint is public (Safaricom calls it) and idempotent: replays of an
// already-settled payment are acknowledged without changes.
func (h *PaymentsHandler) MpesaCallback(c *gin.Context) {
	var envelope mpesa.CallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "Invalid callback payload"})
		return
	}

	callback := envelope.Body.StkCallback
	if callback.CheckoutRequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "Missing CheckoutRequestID"})
		return
	}

	ctx := context.Background()

	payment, err := h.loadPaymentByCheckoutID(ctx, callback.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown payment: acknowledge so Daraja stops retrying, but keep a trace
			h.logger.Warnw("callback for unknown payment", "checkoutRequestId", callback.CheckoutRequestID)
			c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
			return
		}
		h.logError(c, err, "failed to load payment", "checkoutRequestId", callback.CheckoutRequestID)
		c.JSON(http.StatusInternalServerError, gin.H{"ResultCode": 1, "ResultDesc": "Lookup failed"})
		return
	}

	// Replays of settled payments change nothing
	if payment.Status != paymentmodels.StatusPending {
		c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
		return
	}

	if callback.Succeeded() {
		receipt := callback.ReceiptNumber()
		updateQuery := `
			UPDATE payments
			SET status = $1, mpesa_receipt = $2, updated_at = NOW()
			WHERE checkout_request_id = $3
		`
		if _, err := h.postgres.Exec(ctx, updateQuery, paymentmodels.StatusCompleted, receipt, callback.CheckoutRequestID); err != nil {
			h.logError(c, err, "failed to complete payment", "checkoutRequestId", callback.CheckoutRequestID)
			c.JSON(http.StatusInternalServerError, gin.H{"ResultCode": 1, "ResultDesc": "Update failed"})
			return
		}
		payment.Status = paymentmodels.StatusCompleted
		payment.MpesaReceipt = receipt
		metrics.StkPushesTotal.WithLabelValues("completed").Inc()

		// Confirm to the payer by SMS
		if h.notifier != nil {
			message := notify.PaymentSMS(payment.Amount, receipt, payment.AccountReference)
			if err := h.notifier.SendSMS(ctx, "+"+payment.PhoneNumber, message); err != nil {
				h.logger.Warnw("failed to send payment SMS", "checkoutRequestId", callback.CheckoutRequestID, "error", err)
			}
		}
	} else {
		updateQuery := `
			UPDATE payments
			SET status = $1, failure_reason = $2, updated_at = NOW()
			WHERE checkout_request_id = $3
		`
		if _, err := h.postgres.Exec(ctx, updateQuery, paymentmodels.StatusFailed, callback.ResultDesc, callback.CheckoutRequestID); err != nil {
			h.logError(c, err, "failed to mark payment failed", "checkoutRequestId", callback.CheckoutRequestID)
			c.JSON(http.StatusInternalServerError, gin.H{"ResultCode": 1, "ResultDesc": "Update failed"})
			return
		}
		payment.Status = paymentmodels.StatusFailed
		payment.FailureReason = callback.ResultDesc
		metrics.StkPushesTotal.WithLabelValues("failed").Inc()
	}

	payment.UpdatedAt = time.Now()

	// Refresh the polling mirror
	if paymentJSON, err := json.Marshal(payment); err == nil {
		h.redis.Set(ctx, "payment:"+callback.CheckoutRequestID, paymentJSON, 24*time.Hour)
	}

	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// loadPaymentByCheckoutID fetches the payment row Daraja is reporting on.
func (h *PaymentsHandler) loadPaymentByCheckoutID(ctx context.Context, checkoutRequestID string) (*paymentmodels.Payment, error) {
	var payment paymentmodels.Payment
	query := `
		SELECT id, payer_uid, COALESCE(listing_id::text, ''), amount, phone_number, account_reference, COALESCE(merchant_request_id, ''), COALESCE(checkout_request_id, ''), COALESCE(mpesa_receipt, ''), status, COALESCE(failure_reason, ''), created_at, updated_at
		FROM payments
		WHERE checkout_request_id = $1
	`
	err := h.postgres.QueryRow(ctx, query, checkoutRequestID).Scan(
		&payment.ID,
		&payment.PayerUID,
		&payment.ListingID,
		&payment.Amount,
		&payment.PhoneNumber,
		&payment.AccountReference,
		&payment.MerchantRequestID,
		&payment.CheckoutRequestID,
		&payment.MpesaReceipt,
		&payment.Status,
		&payment.FailureReason,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ke.kejani.api/internal/export"
	paymentmodels "ke.kejani.api/internal/models/payment"
)

// ExportStatement builds a spreadsheet of the caller's payments for one
// year and streams it as an attachment.
// Query params: year (optional, defaults to the current year)
func (h *PaymentsHandler) ExportStatement(c *gin.Context) {
	uidCtx, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userUID, ok := uidCtx.(string)
	if !ok || userUID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 2000 || parsed > time.Now().Year() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	ctx := context.Background()

	payments, err := h.fetchPaymentsForYear(ctx, userUID, year)
	if err != nil {
		h.logError(c, err, "failed to fetch payments for statement", "uid", userUID, "year", year)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	statement, err := export.BuildStatement(payments, year)
	if err != nil {
		h.logError(c, err, "failed to build statement", "uid", userUID, "year", year)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		return
	}
	defer func() { _ = statement.Close() }()

	filename := export.StatementFilename(year)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := statement.Write(c.Writer); err != nil {
		h.logger.Warnw("failed to stream statement", "uid", userUID, "year", year, "error", err)
	}
}

// fetchPaymentsForYear loads a user's payments created in the given year,
// oldest first so the statement reads chronologically.
func (h *PaymentsHandler) fetchPaymentsForYear(ctx context.Context, userUID string, year int) ([]paymentmodels.Payment, error) {
	query := `
		SELECT id, payer_uid, COALESCE(listing_id::text, ''), amount, phone_number, account_reference, COALESCE(merchant_request_id, ''), COALESCE(checkout_request_id, ''), COALESCE(mpesa_receipt, ''), status, COALESCE(failure_reason, ''), created_at, updated_at
		FROM payments
		WHERE payer_uid = $1 AND EXTRACT(YEAR FROM created_at) = $2
		ORDER BY created_at ASC
	`
	rows, err := h.postgres.Query(ctx, query, userUID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []paymentmodels.Payment{}
	for rows.Next() {
		var payment paymentmodels.Payment
		if err := rows.Scan(
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
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ke.kejani.api/internal/filter"
	listmodels "ke.kejani.api/internal/models/list_payments"
	paymentmodels "ke.kejani.api/internal/models/payment"
)

// ListPayments returns the caller's payment history, optionally narrowed by
// status and free text over receipt and reference.
func (h *PaymentsHandler) ListPayments(c *gin.Context) {
	// An empty or missing body means no filters
	var req listmodels.ListPaymentsRequest
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

	if req.Status != "" && !paymentmodels.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be PENDING, COMPLETED or FAILED"})
		return
	}

	ctx := context.Background()

	payments, err := h.fetchPaymentsForUser(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to fetch payments", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	payments = applyPaymentFilters(payments, req.Status, req.Query)

	// Completed shillings only; pending and failed attempts don't count
	var totalAmount int64
	for _, payment := range payments {
		if payment.Status == paymentmodels.StatusCompleted {
			totalAmount += payment.Amount
		}
	}

	response := listmodels.ListPaymentsResponse{
		Payments:    payments,
		TotalCount:  len(payments),
		TotalAmount: totalAmount,
	}

	c.JSON(http.StatusOK, response)
}

// applyPaymentFilters narrows payments by status and free text while
// preserving their order.
func applyPaymentFilters(payments []paymentmodels.Payment, status, query string) []paymentmodels.Payment {
	payments = filter.ByStatus(payments, status, func(p paymentmodels.Payment) string { return p.Status })
	payments = filter.ByText(payments, query,
		func(p paymentmodels.Payment) string { return p.MpesaReceipt },
		func(p paymentmodels.Payment) string { return p.AccountReference },
	)
	return payments
}

// fetchPaymentsForUser loads all of a user's payments, newest first.
func (h *PaymentsHandler) fetchPaymentsForUser(ctx context.Context, userUID string) ([]paymentmodels.Payment, error) {
	query := `
		SELECT id, payer_uid, COALESCE(listing_id::text, ''), amount, phone_number, account_reference, COALESCE(merchant_request_id, ''), COALESCE(checkout_request_id, ''), COALESCE(mpesa_receipt, ''), status, COALESCE(failure_reason, ''), created_at, updated_at
		FROM payments
		WHERE payer_uid = $1
		ORDER BY created_at DESC
	`
	rows, err := h.postgres.Query(ctx, query, userUID)
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

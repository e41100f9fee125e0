package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	paymentmodels "ke.kejani.api/internal/models/payment"
)

func samplePayments() []paymentmodels.Payment {
	return []paymentmodels.Payment{
		{ID: "p1", Amount: 25000, MpesaReceipt: "SBK12XYZ9A", AccountReference: "KILIMANI-2BR", Status: paymentmodels.StatusCompleted},
		{ID: "p2", Amount: 25000, AccountReference: "KILIMANI-2BR", Status: paymentmodels.StatusPending},
		{ID: "p3", Amount: 18000, MpesaReceipt: "SBL44QRS7B", AccountReference: "SOUTHB-BED", Status: paymentmodels.StatusFailed},
	}
}

func TestApplyPaymentFiltersByStatus(t *testing.T) {
	got := applyPaymentFilters(samplePayments(), paymentmodels.StatusFailed, "")

	assert.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)
}

func TestApplyPaymentFiltersByText(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"matches receipt", "sbk12", []string{"p1"}},
		{"matches reference", "kilimani", []string{"p1", "p2"}},
		{"no hit", "ZZZ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyPaymentFilters(samplePayments(), "", tt.query)

			gotIDs := make([]string, 0, len(got))
			for _, payment := range got {
				gotIDs = append(gotIDs, payment.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestListPaymentsRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPaymentsHandler(nil, nil, nil, nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/payments/list-payments", withUID("user-1"), h.ListPayments)

	w := postJSON(router, "/api/v1/payments/list-payments", `{"status": "REFUNDED"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Status must be PENDING, COMPLETED or FAILED")
}

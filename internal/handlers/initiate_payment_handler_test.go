package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupInitiatePaymentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// No Daraja client configured, as in local development
	h := NewPaymentsHandler(nil, nil, nil, nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/payments/initiate-payment", withUID("tenant-1"), h.InitiatePayment)
	return router
}

func TestInitiatePaymentRejectsBadAmount(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount": 0, "phoneNumber": "0712345678"}`},
		{"negative amount", `{"amount": -500, "phoneNumber": "0712345678"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupInitiatePaymentRouter()

			w := postJSON(router, "/api/v1/payments/initiate-payment", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Amount must be positive")
		})
	}
}

func TestInitiatePaymentRejectsBadPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{"too short", "12345"},
		{"not kenyan", "+14155550100"},
		{"letters", "07abc45678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupInitiatePaymentRouter()

			w := postJSON(router, "/api/v1/payments/initiate-payment",
				`{"amount": 25000, "phoneNumber": "`+tt.phone+`"}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid phone number")
		})
	}
}

func TestInitiatePaymentUnavailableWithoutDaraja(t *testing.T) {
	// Validation runs first, so a well-formed request is what reaches
	// the missing-client check.
	router := setupInitiatePaymentRouter()

	w := postJSON(router, "/api/v1/payments/initiate-payment",
		`{"amount": 25000, "phoneNumber": "0712345678"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Payments are not available")
}

func TestInitiatePaymentRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPaymentsHandler(nil, nil, nil, nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/payments/initiate-payment", h.InitiatePayment)

	w := postJSON(router, "/api/v1/payments/initiate-payment",
		`{"amount": 25000, "phoneNumber": "0712345678"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupCallbackRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentsHandler(nil, nil, nil, nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/payments/mpesa-callback", h.MpesaCallback)
	return router
}

func TestMpesaCallbackRejectsMalformedPayload(t *testing.T) {
	router := setupCallbackRouter()

	w := postJSON(router, "/api/v1/payments/mpesa-callback", `{"Body": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ResultCode":1`)
}

func TestMpesaCallbackRequiresCheckoutID(t *testing.T) {
	router := setupCallbackRouter()

	body := `{"Body": {"stkCallback": {"MerchantRequestID": "mr-1", "ResultCode": 0, "ResultDesc": "Success"}}}`
	w := postJSON(router, "/api/v1/payments/mpesa-callback", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing CheckoutRequestID")
}

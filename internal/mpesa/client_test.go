package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ke.kejani.api/internal/config"
)

type testDaraja struct {
	client       *Client
	tokenFetches int
	pushes       int
	lastPush     stkPushRequest
}

func newTestDaraja(t *testing.T, pushStatus int, pushResponse interface{}) *testDaraja {
	t.Helper()
	td := &testDaraja{}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		td.tokenFetches++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-1",
			"expires_in":   "3599",
		})
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		td.pushes++
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&td.lastPush))
		w.WriteHeader(pushStatus)
		_ = json.NewEncoder(w).Encode(pushResponse)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	td.client = NewClient(config.MpesaConfig{
		BaseURL:        server.URL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		Passkey:        "passkey123",
		CallbackURL:    "https://api.kejani.ke/api/v1/payments/callback",
	})
	return td
}

func acceptedPush() STKPushResponse {
	return STKPushResponse{
		MerchantRequestID:   "29115-34620561-1",
		CheckoutRequestID:   "ws_CO_191220191020363925",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}
}

func TestSTKPush(t *testing.T) {
	td := newTestDaraja(t, http.StatusOK, acceptedPush())

	resp, err := td.client.STKPush(context.Background(), "0712 345 678", 35000, "KEJ-4411", "August rent")
	require.NoError(t, err)

	assert.Equal(t, "ws_CO_191220191020363925", resp.CheckoutRequestID)
	assert.Equal(t, "29115-34620561-1", resp.MerchantRequestID)

	push := td.lastPush
	assert.Equal(t, "174379", push.BusinessShortCode)
	assert.Equal(t, "CustomerPayBillOnline", push.TransactionType)
	assert.Equal(t, int64(35000), push.Amount)
	assert.Equal(t, "254712345678", push.PartyA)
	assert.Equal(t, "254712345678", push.PhoneNumber)
	assert.Equal(t, "KEJ-4411", push.AccountReference)
	assert.Equal(t, "https://api.kejani.ke/api/v1/payments/callback", push.CallBackURL)

	decoded, err := base64.StdEncoding.DecodeString(push.Password)
	require.NoError(t, err)
	assert.Equal(t, "174379"+"passkey123"+push.Timestamp, string(decoded))
}

func TestSTKPushRejected(t *testing.T) {
	td := newTestDaraja(t, http.StatusOK, STKPushResponse{
		ResponseCode:        "1",
		ResponseDescription: "Invalid PhoneNumber",
	})

	_, err := td.client.STKPush(context.Background(), "0712345678", 1000, "KEJ-1", "rent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid PhoneNumber")
}

func TestSTKPushServerError(t *testing.T) {
	td := newTestDaraja(t, http.StatusServiceUnavailable, map[string]string{"errorMessage": "Spike arrest"})

	_, err := td.client.STKPush(context.Background(), "0712345678", 1000, "KEJ-1", "rent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestSTKPushReusesToken(t *testing.T) {
	td := newTestDaraja(t, http.StatusOK, acceptedPush())

	_, err := td.client.STKPush(context.Background(), "0712345678", 1000, "KEJ-1", "rent")
	require.NoError(t, err)
	_, err = td.client.STKPush(context.Background(), "0722000000", 2000, "KEJ-2", "deposit")
	require.NoError(t, err)

	assert.Equal(t, 1, td.tokenFetches)
	assert.Equal(t, 2, td.pushes)
}

func TestSTKPushInvalidPhoneSkipsNetwork(t *testing.T) {
	td := newTestDaraja(t, http.StatusOK, acceptedPush())

	_, err := td.client.STKPush(context.Background(), "12345", 1000, "KEJ-1", "rent")
	require.Error(t, err)
	assert.Equal(t, 0, td.tokenFetches)
	assert.Equal(t, 0, td.pushes)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0712345678", "254712345678", false},
		{"0712 345 678", "254712345678", false},
		{"+254712345678", "254712345678", false},
		{"254712345678", "254712345678", false},
		{"0110-123-456", "254110123456", false},
		{"12345", "", true},
		{"07123456789999", "", true},
		{"notaphone", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallbackParsing(t *testing.T) {
	t.Run("successful payment", func(t *testing.T) {
		payload := `{
			"Body": {
				"stkCallback": {
					"MerchantRequestID": "29115-34620561-1",
					"CheckoutRequestID": "ws_CO_191220191020363925",
					"ResultCode": 0,
					"ResultDesc": "The service request is processed successfully.",
					"CallbackMetadata": {
						"Item": [
							{"Name": "Amount", "Value": 35000.00},
							{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
							{"Name": "TransactionDate", "Value": 20191219102115},
							{"Name": "PhoneNumber", "Value": 254712345678}
						]
					}
				}
			}
		}`

		var envelope CallbackEnvelope
		require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

		cb := envelope.Body.StkCallback
		assert.True(t, cb.Succeeded())
		assert.Equal(t, "NLJ7RT61SV", cb.ReceiptNumber())
		assert.Equal(t, int64(35000), cb.Amount())
		assert.Equal(t, "ws_CO_191220191020363925", cb.CheckoutRequestID)
	})

	t.Run("cancelled payment", func(t *testing.T) {
		payload := `{
			"Body": {
				"stkCallback": {
					"MerchantRequestID": "29115-34620561-2",
					"CheckoutRequestID": "ws_CO_191220191020363926",
					"ResultCode": 1032,
					"ResultDesc": "Request cancelled by user."
				}
			}
		}`

		var envelope CallbackEnvelope
		require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

		cb := envelope.Body.StkCallback
		assert.False(t, cb.Succeeded())
		assert.Empty(t, cb.ReceiptNumber())
		assert.Zero(t, cb.Amount())
	})
}

package mpesa

// CallbackEnvelope is the body Daraja posts to the callback URL once the
// subscriber has approved, cancelled, or timed out the STK prompt.
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string           `json:"MerchantRequestID"`
	CheckoutRequestID string           `json:"CheckoutRequestID"`
	ResultCode        int              `json:"ResultCode"`
	ResultDesc        string           `json:"ResultDesc"`
	CallbackMetadata  CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

// CallbackItem values are strings or numbers depending on the Name, so the
// value stays untyped until accessed.
type CallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// Succeeded reports whether the subscriber completed the payment.
func (cb StkCallback) Succeeded() bool {
	return cb.ResultCode == 0
}

// ReceiptNumber extracts the M-Pesa receipt from the metadata items, empty
// when the payment did not complete.
func (cb StkCallback) ReceiptNumber() string {
	for _, item := range cb.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if s, ok := item.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// Amount extracts the paid amount from the metadata items, zero when absent.
func (cb StkCallback) Amount() int64 {
	for _, item := range cb.CallbackMetadata.Item {
		if item.Name == "Amount" {
			if f, ok := item.Value.(float64); ok {
				return int64(f)
			}
		}
	}
	return 0
}

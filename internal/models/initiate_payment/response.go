package models

import paymentmodels "ke.kejani.api/internal/models/payment"

type InitiatePaymentResponse struct {
	Payment         paymentmodels.Payment `json:"payment"`
	CustomerMessage string                `json:"customerMessage,omitempty"`
}

package models

import paymentmodels "ke.kejani.api/internal/models/payment"

type ListPaymentsResponse struct {
	Payments    []paymentmodels.Payment `json:"payments"`
	TotalCount  int                     `json:"totalCount"`
	TotalAmount int64                   `json:"totalAmount"`
}

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequestPayload carries what the client needs to complete payment.
type PaymentRequestPayload struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret,omitempty"`
	Status          string `json:"status"`
	Reference       string `json:"reference"`
}

type CheckoutResult struct {
	OrderID        uuid.UUID              `json:"order_id"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	Status         OrderStatus            `json:"status"`
	InvoiceNumber  string                 `json:"invoice_number"`
	PaymentRequest *PaymentRequestPayload `json:"payment_request,omitempty"`
}

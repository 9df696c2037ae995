package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

// MaxOrderTotal is the largest amount orders.total_amount (NUMERIC(12,2)) holds.
var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusFailed    OrderStatus = "failed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusShipped, OrderStatusFailed:
		return true
	}

	return false
}

// OrderItem price is a snapshot taken at checkout.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	ShopperID   uuid.UUID       `json:"shopper_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Reference is the account reference handed to the payment gateway.
func (o *Order) Reference() string {
	return fmt.Sprintf("Order-%s", o.ID)
}

func (o *Order) InvoiceNumber() string {
	return fmt.Sprintf("INV-%s", o.ID)
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending completed shipped failed"`
}

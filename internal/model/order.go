package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"

	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

var (
	OrderStatuses   = []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}
	PaymentStatuses = []string{PaymentUnpaid, PaymentPaid, PaymentRefunded}
)

// Order is a shop order header.  Line items live in order_items.
type Order struct {
	ID            uint64          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerEmail string          `json:"customer_email"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Status        string          `json:"status"`
	SubtotalCents int64           `json:"subtotal_cents"`
	TaxCents      int64           `json:"tax_cents"`
	TotalCents    int64           `json:"total_cents"`
	PaymentStatus string          `json:"payment_status"`
	Metadata      json.RawMessage `json:"metadata"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem is one line of an order, priced at checkout time.
type OrderItem struct {
	ID              uint64  `json:"id"`
	OrderID         uint64  `json:"order_id"`
	ProductID       *uint64 `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductSlug     *string `json:"product_slug"`
	Quantity        int     `json:"quantity"`
	UnitPriceCents  int64   `json:"unit_price_cents"`
	TotalPriceCents int64   `json:"total_price_cents"`
}

// ShippingAddress is stored in the order's metadata column.
type ShippingAddress struct {
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// NewOrderNumber formats HC-<unix millis>-<n>, n in [0, 999].
func NewOrderNumber(t time.Time, n int) string {
	return fmt.Sprintf("HC-%d-%d", t.UnixMilli(), n%1000)
}

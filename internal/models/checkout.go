package models

import (
	"time"
)

// Checkout statuses. A freshly created checkout is pending; confirming it
// makes it completed. The status is cleared when confirm compensation runs.
const (
	CheckoutStatusPending   = "pending"
	CheckoutStatusCompleted = "completed"
)

// CheckoutItem is one priced line of a checkout aggregate.
// Stored as part of the checkout's JSON items column.
type CheckoutItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// CheckoutItemInput is an unpriced line as submitted by the caller;
// price and total are resolved from the product catalog.
type CheckoutItemInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// Checkout bundles line items, computed totals and a lifecycle status
type Checkout struct {
	ID         int64          `json:"id" db:"id"`
	UserID     int64          `json:"user_id" db:"user_id"`
	Items      []CheckoutItem `json:"items" db:"-"`
	TotalPrice float64        `json:"total_price" db:"total_price"`
	Status     string         `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists every accepted order status.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// Order is a purchase made by a user.
type Order struct {
	ID          string          `json:"id"`
	User        UserRef         `json:"user"`
	Products    []OrderItem     `json:"products"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderItem is a requested product line. Product is populated on reads.
type OrderItem struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	Product   *ProductRef `json:"product,omitempty"`
}

// OrderInput is the create payload. A legacy single ProductID (+ Quantity) is accepted
// and normalized into Products.
type OrderInput struct {
	Products    []OrderItem     `json:"products"`
	ProductID   string          `json:"productId,omitempty"`
	Quantity    int             `json:"quantity,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"number"`
}

// Normalize folds the legacy single-product form into Products.
func (in OrderInput) Normalize() OrderInput {
	if len(in.Products) == 0 && in.ProductID != "" {
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		in.Products = []OrderItem{{ProductID: in.ProductID, Quantity: qty}}
	}
	return in
}

// OrderUpdate is a partial update: nil fields keep their stored value.
type OrderUpdate struct {
	Products    *[]OrderItem     `json:"products,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty" swaggertype:"number"`
	Status      *string          `json:"status,omitempty"`
}

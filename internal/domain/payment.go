package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods and statuses.
const (
	PaymentCash = "cash"
	PaymentCard = "card"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

var (
	PaymentMethods  = []string{PaymentCash, PaymentCard}
	PaymentStatuses = []string{PaymentPending, PaymentCompleted, PaymentFailed}
)

// Payment is one payment attempt for an order.
type Payment struct {
	ID            string          `json:"id"`
	Order         OrderRef        `json:"order"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// OrderRef is the projection of an order embedded in payments.
type OrderRef struct {
	ID          string           `json:"id"`
	User        string           `json:"user,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty" swaggertype:"number"`
	Status      string           `json:"status,omitempty"`
}

// PaymentInput is the create payload.
type PaymentInput struct {
	Order         string          `json:"order"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"number"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId,omitempty"`
}

// PaymentStatusUpdate is the update payload.
type PaymentStatusUpdate struct {
	Status string `json:"status"`
}

package domain

import (
	"errors"
	"time"
)

// MaxLineQuantity bounds the quantity of a single cart or order line item.
const MaxLineQuantity = 1000

// Cart belongs to one user and holds at most one line item per product.
type Cart struct {
	ID        string     `json:"id"`
	User      UserRef    `json:"user"`
	Products  []CartItem `json:"products"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is a line item, in insertion order.
type CartItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// AddToCart is the add-to-cart payload.
type AddToCart struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartReplace is the cart update payload; it replaces every line item.
type CartReplace struct {
	Products []CartItem `json:"products"`
}

// ErrLineLimit is returned when a merge would push a line item above MaxLineQuantity.
var ErrLineLimit = errors.New("line item quantity limit exceeded")

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductRef is the projection of a product embedded in order line items.
type ProductRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price" swaggertype:"number"`
}

// ProductInput is the create payload. Stock, Images and IsActive are optional.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Stock       *int            `json:"stock,omitempty"`
	Category    string          `json:"category"`
	Images      []string        `json:"images,omitempty"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

// ProductUpdate is a partial update: nil fields keep their stored value.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" swaggertype:"number"`
	Stock       *int             `json:"stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Stock == nil &&
		u.Category == nil && u.Images == nil && u.IsActive == nil
}

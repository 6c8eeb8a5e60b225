// Package messages is the catalog of client-facing texts, grouped by domain.
package messages

import (
	"fmt"
	"strings"
)

// Generic rule texts, parameterized by the field name.
func NotEmpty(field string) string       { return fmt.Sprintf("%s must not be empty.", field) }
func PositiveNumber(field string) string { return fmt.Sprintf("%s must be a positive number.", field) }
func NonNegative(field string) string    { return fmt.Sprintf("%s must not be negative.", field) }
func ArrayNotEmpty(field string) string  { return fmt.Sprintf("%s must be a non-empty array.", field) }
func InvalidID(field string) string      { return fmt.Sprintf("%s is not a valid id.", field) }

func MaxLength(field string, n int) string {
	return fmt.Sprintf("%s must not exceed %d characters.", field, n)
}

func OneOf(field string, values []string) string {
	return fmt.Sprintf("%s must be one of: %s.", field, strings.Join(values, ", "))
}

func QuantityRange(field string, n int) string {
	return fmt.Sprintf("%s must be an integer between 1 and %d.", field, n)
}

// ItemRequired and ItemQuantity tag a line-item violation with its 1-based position.
func ItemRequired(field string, pos int) string {
	return fmt.Sprintf("%s at position %d is required.", field, pos)
}

func ItemQuantity(pos int, n int) string {
	return fmt.Sprintf("Quantity at position %d must be an integer between 1 and %d.", pos, n)
}

func ItemNotFound(pos int) string {
	return fmt.Sprintf("Product at position %d does not exist.", pos)
}

func ItemDuplicate(pos int) string {
	return fmt.Sprintf("Product at position %d is already listed.", pos)
}

// Generic envelopes.
const (
	EndpointNotFound = "Endpoint not found"
	InternalServer   = "Internal server error"
	InvalidPayload   = "Invalid JSON payload."
	TooManyRequests  = "Rate limit exceeded"
)

// Auth texts.
const (
	AuthMissingToken = "Authorization token missing or malformed."
	AuthInvalidToken = "Invalid or expired token."
	LoginSuccess     = "Login successful"
	LoginUnknownUser = "User not found"
	LoginBadPassword = "Invalid password"
	LoginFailed      = "Error during login."
)

// User texts.
const (
	UserInvalidEmail    = "Email is not valid."
	UserInvalidPassword = "Password must be at least 8 characters and include a letter, a digit and a special character."
	UserNotFound        = "User not found."
	UserEmailExists     = "Email is already registered."
	UserEmailTaken      = "Email is already used by another user."
	UserCreated         = "User created successfully."
	UserUpdated         = "User updated successfully."
	UserDeleted         = "User deleted successfully."
	UserCreateFailed    = "Error creating user."
	UserUpdateFailed    = "Error updating user."
	UserDeleteFailed    = "Error deleting user."
	UserListFailed      = "Error fetching users."
	UserFetchFailed     = "Error fetching user."
)

// Product texts.
const (
	ProductNotFound     = "Product not found."
	ProductInUse        = "Product is referenced by existing orders."
	ProductCreated      = "Product created successfully."
	ProductUpdated      = "Product updated successfully."
	ProductDeleted      = "Product deleted successfully."
	ProductCreateFailed = "Error creating product."
	ProductUpdateFailed = "Error updating product."
	ProductDeleteFailed = "Error deleting product."
	ProductListFailed   = "Error fetching products."
	ProductFetchFailed  = "Error fetching product."
)

// Cart texts.
const (
	CartNotFound         = "Cart not found."
	CartProductAdded     = "Product added to cart successfully."
	CartUpdated          = "Cart updated successfully."
	CartDeleted          = "Cart deleted successfully."
	CartQuantityExceeded = "Quantity in cart would exceed the allowed maximum."
	CartAddFailed        = "Error adding product to cart."
	CartUpdateFailed     = "Error updating cart."
	CartDeleteFailed     = "Error deleting cart."
	CartListFailed       = "Error fetching carts."
	CartFetchFailed      = "Error fetching cart."
)

// Order texts.
const (
	OrderNotFound     = "Order not found."
	OrderCreated      = "Order created successfully."
	OrderUpdated      = "Order updated successfully."
	OrderDeleted      = "Order deleted successfully."
	OrderCreateFailed = "Error creating order."
	OrderUpdateFailed = "Error updating order."
	OrderDeleteFailed = "Error deleting order."
	OrderListFailed   = "Error fetching orders."
	OrderFetchFailed  = "Error fetching order."
)

// Payment texts.
const (
	PaymentNotFound     = "Payment not found."
	PaymentOrderMissing = "Order referenced by the payment does not exist."
	PaymentCreated      = "Payment created successfully."
	PaymentUpdated      = "Payment updated successfully."
	PaymentDeleted      = "Payment deleted successfully."
	PaymentCreateFailed = "Error creating payment."
	PaymentUpdateFailed = "Error updating payment."
	PaymentDeleteFailed = "Error deleting payment."
	PaymentListFailed   = "Error fetching payments."
	PaymentFetchFailed  = "Error fetching payment."
)

// Review texts.
const (
	ReviewNotFound     = "Review not found."
	ReviewCreated      = "Review created successfully."
	ReviewDeleted      = "Review deleted successfully."
	ReviewCreateFailed = "Error creating review."
	ReviewDeleteFailed = "Error deleting review."
	ReviewListFailed   = "Error fetching reviews."
)

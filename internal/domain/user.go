package domain

import (
	"errors"
	"time"
)

// User represents a registered customer.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRef is the projection of a user embedded in carts, orders and reviews.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserRegistration is the signup payload.
type UserRegistration struct {
	Name     string `json:"name" example:"Ana Souza"`
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"Secr3t!pass"`
}

// UserUpdate is a partial update: nil fields keep their stored value.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserChanges is what the repository writes on update, already resolved and hashed.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"Secr3t!pass"`
}

// ErrDuplicateEmail is returned by the user repository when the unique e-mail index rejects a write.
var ErrDuplicateEmail = errors.New("email already registered")

package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "storefront/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		status   int
		category string
		body     map[string]interface{}
	}{
		{
			name:     "validation keeps every message",
			err:      apperror.NewValidationError("name is required", "price must be positive"),
			status:   http.StatusBadRequest,
			category: "VALIDATION_ERROR",
			body:     map[string]interface{}{"errors": []string{"name is required", "price must be positive"}},
		},
		{
			name:     "not found",
			err:      apperror.NewNotFoundError("Product not found."),
			status:   http.StatusNotFound,
			category: "NOT_FOUND",
			body:     map[string]interface{}{"message": "Product not found."},
		},
		{
			name:     "unauthorized",
			err:      apperror.NewUnauthorizedError("Invalid password"),
			status:   http.StatusUnauthorized,
			category: "UNAUTHORIZED",
			body:     map[string]interface{}{"message": "Invalid password"},
		},
		{
			name:     "internal wrapped by fmt.Errorf",
			err:      fmt.Errorf("service: %w", apperror.NewInternalError("Error creating order.", cause)),
			status:   http.StatusInternalServerError,
			category: "INTERNAL_ERROR",
			body:     map[string]interface{}{"message": "Error creating order.", "error": "connection refused"},
		},
		{
			name:     "untyped error",
			err:      cause,
			status:   http.StatusInternalServerError,
			category: "UNKNOWN_ERROR",
			body:     map[string]interface{}{"message": "Internal server error", "error": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, body := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestWithMessage(t *testing.T) {
	cause := stderrors.New("timeout")

	relabeled := apperror.WithMessage(apperror.NewDBError("failed to insert product", cause), "Error creating product.")
	var internalErr *apperror.InternalError
	assert.True(t, stderrors.As(relabeled, &internalErr))
	assert.Equal(t, "Error creating product.", internalErr.Msg)
	assert.ErrorIs(t, relabeled, cause)

	notFound := apperror.NewNotFoundError("Order not found.")
	assert.Same(t, notFound, apperror.WithMessage(notFound, "Error updating order."))

	plain := apperror.WithMessage(cause, "Error fetching carts.")
	assert.True(t, stderrors.As(plain, &internalErr))
	assert.Equal(t, "Error fetching carts.", internalErr.Msg)
}

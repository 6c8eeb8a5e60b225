package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/api/response"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
)

func TestError_Envelopes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperror.NewValidationError("a", "b"), http.StatusBadRequest, `{"errors":["a","b"]}`},
		{"not found", apperror.NewNotFoundError("Cart not found."), http.StatusNotFound, `{"message":"Cart not found."}`},
		{"internal", apperror.NewInternalError("Error fetching carts.", errors.New("timeout")), http.StatusInternalServerError,
			`{"message":"Error fetching carts.","error":"timeout"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)

			response.Error(rec, req, logger.NewNop(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/product", strings.NewReader(`{"name":`))

	var dst map[string]interface{}
	err := response.Decode(req, &dst)

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{messages.InvalidPayload}, vErr.Msgs)
}

func TestListQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/product?page=2&limit=5&search=lamp&sort=price&order=desc", nil)

	q := response.ListQuery(req)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, "lamp", q.Search)
	assert.Equal(t, "price", q.Sort)
	assert.Equal(t, "desc", q.Order)

	bad := response.ListQuery(httptest.NewRequest(http.MethodGet, "/api/user?page=two", nil))
	assert.Equal(t, 0, bad.Page)
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, http.StatusCreated, response.Message("ok"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok", body["message"])
}

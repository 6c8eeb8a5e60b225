package order

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/middleware"
)

// OrderService is what the handler needs from the service layer.
type OrderService interface {
	Create(ctx context.Context, userID string, in domain.OrderInput) (domain.Order, error)
	Update(ctx context.Context, id string, upd domain.OrderUpdate) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// OrderEnvelope is the body of order create, update and get.
type OrderEnvelope struct {
	Message string       `json:"message,omitempty" example:"Order created successfully."`
	Order   domain.Order `json:"order"`
}

// OrderList is the body of the order list.
type OrderList struct {
	Orders []domain.Order `json:"orders"`
}

// Handler groups the order endpoints.
type Handler struct {
	Service OrderService
	Logger  logger.Logger
}

// NewHandler creates the order handler.
func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateOrderHandler godoc
// @Summary Place an order
// @Description Accepts a list of line items; a single productId (+ quantity, default 1) is also accepted.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body domain.OrderInput true "Line items and total"
// @Success 201 {object} OrderEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /order [post]
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.RequireSubject(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	var in domain.OrderInput
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	order, err := h.Service.Create(r.Context(), subject.ID, in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, OrderEnvelope{Message: messages.OrderCreated, Order: order})
}

// ListOrdersHandler godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OrderList
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /order [get]
func (h *Handler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, OrderList{Orders: orders})
}

// GetOrderHandler godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} OrderEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Router /order/{id} [get]
func (h *Handler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, OrderEnvelope{Order: order})
}

// UpdateOrderHandler godoc
// @Summary Update an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param order body domain.OrderUpdate true "Fields to change"
// @Success 200 {object} OrderEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /order/{id} [put]
func (h *Handler) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.OrderUpdate
	if err := response.Decode(r, &upd); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	order, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, OrderEnvelope{Message: messages.OrderUpdated, Order: order})
}

// DeleteOrderHandler godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /order/{id} [delete]
func (h *Handler) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Message(messages.OrderDeleted))
}

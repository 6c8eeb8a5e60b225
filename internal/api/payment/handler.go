package payment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
)

// PaymentService is what the handler needs from the service layer.
type PaymentService interface {
	Create(ctx context.Context, in domain.PaymentInput) (domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, in domain.PaymentStatusUpdate) (domain.Payment, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}

// PaymentEnvelope is the body of payment create, update and get.
type PaymentEnvelope struct {
	Message string         `json:"message,omitempty" example:"Payment created successfully."`
	Payment domain.Payment `json:"payment"`
}

// PaymentList is the body of the payment list.
type PaymentList struct {
	Payments []domain.Payment `json:"payments"`
}

// Handler groups the payment endpoints.
type Handler struct {
	Service PaymentService
	Logger  logger.Logger
}

// NewHandler creates the payment handler.
func NewHandler(svc PaymentService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreatePaymentHandler godoc
// @Summary Record a payment
// @Description The payment starts as pending. Method is cash or card.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body domain.PaymentInput true "Order, amount and method"
// @Success 201 {object} PaymentEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /payment [post]
func (h *Handler) CreatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.PaymentInput
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	payment, err := h.Service.Create(r.Context(), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, PaymentEnvelope{Message: messages.PaymentCreated, Payment: payment})
}

// ListPaymentsHandler godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PaymentList
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /payment [get]
func (h *Handler) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, PaymentList{Payments: payments})
}

// GetPaymentHandler godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} PaymentEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Router /payment/{id} [get]
func (h *Handler) GetPaymentHandler(w http.ResponseWriter, r *http.Request) {
	payment, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, PaymentEnvelope{Payment: payment})
}

// UpdatePaymentHandler godoc
// @Summary Change the status of a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param status body domain.PaymentStatusUpdate true "pending, completed or failed"
// @Success 200 {object} PaymentEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /payment/{id} [put]
func (h *Handler) UpdatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.PaymentStatusUpdate
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	payment, err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, PaymentEnvelope{Message: messages.PaymentUpdated, Payment: payment})
}

// DeletePaymentHandler godoc
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /payment/{id} [delete]
func (h *Handler) DeletePaymentHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Message(messages.PaymentDeleted))
}

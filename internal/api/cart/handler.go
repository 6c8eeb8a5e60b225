package cart

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

// CartService is what the handler needs from the service layer.
type CartService interface {
	AddProduct(ctx context.Context, userID string, in domain.AddToCart) (domain.Cart, error)
	Update(ctx context.Context, id string, in domain.CartReplace) (domain.Cart, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Cart, error)
	List(ctx context.Context) ([]domain.Cart, error)
	Mine(ctx context.Context, userID string) (domain.Cart, error)
}

// CartEnvelope is the body of add, update and get.
type CartEnvelope struct {
	Message string      `json:"message,omitempty" example:"Product added to cart successfully."`
	Cart    domain.Cart `json:"cart"`
}

// CartList is the body of the cart list.
type CartList struct {
	Carts []domain.Cart `json:"carts"`
}

// Handler groups the cart endpoints. Every route requires a token.
type Handler struct {
	Service CartService
	Logger  logger.Logger
}

// NewHandler creates the cart handler.
func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AddProductHandler godoc
// @Summary Add a product to the caller's cart
// @Description Creates the cart on first use. Adding a product already in the cart increases its quantity.
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body domain.AddToCart true "Product and quantity (1..1000)"
// @Success 200 {object} CartEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /cart/add [post]
func (h *Handler) AddProductHandler(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.RequireSubject(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	var in domain.AddToCart
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	cart, err := h.Service.AddProduct(r.Context(), subject.ID, in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, CartEnvelope{Message: messages.CartProductAdded, Cart: cart})
}

// ListCartsHandler godoc
// @Summary List carts
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartList
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /cart [get]
func (h *Handler) ListCartsHandler(w http.ResponseWriter, r *http.Request) {
	carts, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, CartList{Carts: carts})
}

// MyCartHandler godoc
// @Summary Get the caller's cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartEnvelope
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /cart/me [get]
func (h *Handler) MyCartHandler(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.RequireSubject(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	cart, err := h.Service.Mine(r.Context(), subject.ID)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, CartEnvelope{Cart: cart})
}

// GetCartHandler godoc
// @Summary Get a cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} CartEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Router /cart/{id} [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, CartEnvelope{Cart: cart})
}

// UpdateCartHandler godoc
// @Summary Replace the line items of a cart
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Param cart body domain.CartReplace true "New line items"
// @Success 200 {object} CartEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /cart/{id} [put]
func (h *Handler) UpdateCartHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.CartReplace
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	cart, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, CartEnvelope{Message: messages.CartUpdated, Cart: cart})
}

// DeleteCartHandler godoc
// @Summary Delete a cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /cart/{id} [delete]
func (h *Handler) DeleteCartHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Message(messages.CartDeleted))
}

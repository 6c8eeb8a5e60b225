package product

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
)

// ProductService is what the handler needs from the service layer.
type ProductService interface {
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Product], error)
}

// ProductEnvelope is the body of product create, update and get.
type ProductEnvelope struct {
	Message string         `json:"message,omitempty" example:"Product created successfully."`
	Product domain.Product `json:"product"`
}

// ProductPage is the body of the product list.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total" example:"12"`
	Page     int              `json:"page" example:"2"`
	Limit    int              `json:"limit" example:"5"`
}

// Handler groups the catalog endpoints.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler creates the product handler.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateProductHandler godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body domain.ProductInput true "New product"
// @Success 201 {object} ProductEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /product [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	product, err := h.Service.Create(r.Context(), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, ProductEnvelope{Message: messages.ProductCreated, Product: product})
}

// ListProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page, from 1" default(1)
// @Param limit query int false "Page size, at most 100" default(10)
// @Param search query string false "Case-insensitive match on name or description"
// @Param sort query string false "name, price, stock, category, createdAt or updatedAt" default(name)
// @Param order query string false "asc or desc" default(asc)
// @Success 200 {object} ProductPage
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /product [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), response.ListQuery(r))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, ProductPage{Products: page.Items, Total: page.Total, Page: page.Page, Limit: page.Limit})
}

// GetProductByIDHandler godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /product/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, ProductEnvelope{Product: product})
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Only the fields sent are changed.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body domain.ProductUpdate true "Fields to change"
// @Success 200 {object} ProductEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /product/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.ProductUpdate
	if err := response.Decode(r, &upd); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	product, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, ProductEnvelope{Message: messages.ProductUpdated, Product: product})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 409 {object} domain.MessageResponse "Product is referenced by orders"
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /product/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Message(messages.ProductDeleted))
}

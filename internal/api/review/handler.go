package review

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

// ReviewService is what the handler needs from the service layer.
type ReviewService interface {
	Create(ctx context.Context, userID string, in domain.ReviewInput) (domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// ReviewEnvelope is the body of a created review.
type ReviewEnvelope struct {
	Message string        `json:"message" example:"Review created successfully."`
	Review  domain.Review `json:"review"`
}

// ReviewList is the body of the reviews of a product.
type ReviewList struct {
	Reviews []domain.Review `json:"reviews"`
}

// Handler groups the review endpoints.
type Handler struct {
	Service ReviewService
	Logger  logger.Logger
}

// NewHandler creates the review handler.
func NewHandler(svc ReviewService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateReviewHandler godoc
// @Summary Review a product
// @Description The product comes from the path when present, otherwise from the body.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string false "Product ID"
// @Param review body domain.ReviewInput true "Rating and comment (at most 500 characters)"
// @Success 201 {object} ReviewEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /review [post]
// @Router /review/{productId} [post]
func (h *Handler) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.RequireSubject(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	var in domain.ReviewInput
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if productID := chi.URLParam(r, "productId"); productID != "" {
		in.Product = productID
	}

	review, err := h.Service.Create(r.Context(), subject.ID, in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, ReviewEnvelope{Message: messages.ReviewCreated, Review: review})
}

// ListReviewsHandler godoc
// @Summary List the reviews of a product
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} ReviewList
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /review/{productId} [get]
func (h *Handler) ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListByProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, ReviewList{Reviews: reviews})
}

// DeleteReviewHandler godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /review/{id} [delete]
func (h *Handler) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Message(messages.ReviewDeleted))
}

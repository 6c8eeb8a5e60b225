package reviewservice

import (
	"context"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
	"storefront/internal/validator"
)

// ReviewRepository is the persistence contract of reviews.
type ReviewRepository interface {
	Save(ctx context.Context, review domain.Review) (domain.Review, error)
	FindByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// ProductLookup answers which referenced products do not exist.
type ProductLookup interface {
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
}

// Service manages product reviews.
type Service struct {
	reviews  ReviewRepository
	products ProductLookup
	logger   logger.Logger
}

// NewService creates the review service.
func NewService(reviews ReviewRepository, products ProductLookup, log logger.Logger) *Service {
	return &Service{reviews: reviews, products: products, logger: log}
}

func validateCreate(ctx context.Context, products ProductLookup, in domain.ReviewInput) (validator.Result, error) {
	productCheck := validator.NotEmpty(in.Product, messages.NotEmpty("Product"))
	if productCheck == "" {
		productCheck = validator.UUID(in.Product, messages.InvalidID("Product"))
	}
	res := validator.All(
		productCheck,
		validator.PositiveNumber(in.Rating, messages.PositiveNumber("Rating")),
		validator.MaxLength(in.Comment, domain.MaxCommentLength, messages.MaxLength("Comment", domain.MaxCommentLength)),
	)
	if !res.OK() {
		return res, nil
	}

	missing, err := products.MissingIDs(ctx, []string{in.Product})
	if err != nil {
		return validator.Result{}, err
	}
	if len(missing) > 0 {
		return validator.Fail(messages.ProductNotFound), nil
	}
	return validator.Pass(), nil
}

// Create stores a review written by userID.
func (s *Service) Create(ctx context.Context, userID string, in domain.ReviewInput) (domain.Review, error) {
	res, err := validateCreate(ctx, s.products, in)
	if err != nil {
		return domain.Review{}, apperror.WithMessage(err, messages.ReviewCreateFailed)
	}
	if !res.OK() {
		s.logger.Warn("review create rejected", map[string]interface{}{"user_id": userID, "errors": res.Errors()})
		return domain.Review{}, res.Err()
	}

	review, err := s.reviews.Save(ctx, domain.Review{
		Product: in.Product,
		User:    domain.UserRef{ID: userID},
		Rating:  in.Rating,
		Comment: in.Comment,
	})
	if err != nil {
		return domain.Review{}, apperror.WithMessage(err, messages.ReviewCreateFailed)
	}
	return review, nil
}

// ListByProduct returns the reviews of a product with their authors.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if err := validator.ValidID(productID, "Product ID"); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, apperror.WithMessage(err, messages.ReviewListFailed)
	}
	return reviews, nil
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validator.ValidID(id, "Review ID"); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return apperror.WithMessage(err, messages.ReviewDeleteFailed)
	}
	return nil
}

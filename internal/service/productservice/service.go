package productservice

import (
	"context"
	"strings"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
	"storefront/internal/validator"
)

// ProductRepository is the persistence contract of the catalog.
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, query domain.ListQuery) ([]domain.Product, int, error)
	Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service manages the product catalog.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService creates the product service.
func NewService(repo ProductRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func validateCreate(in domain.ProductInput) validator.Result {
	return validator.All(
		validator.NotEmpty(in.Name, messages.NotEmpty("Product name")),
		validator.NotEmpty(in.Description, messages.NotEmpty("Description")),
		validator.PositiveDecimal(in.Price, messages.PositiveNumber("Price")),
		validator.NotEmpty(in.Category, messages.NotEmpty("Category")),
		validator.Optional(in.Stock != nil, validator.NonNegativeInt(validator.Deref(in.Stock), messages.NonNegative("Stock"))),
	)
}

// Create adds a product. Stock defaults to 0 and the product starts active.
func (s *Service) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if res := validateCreate(in); !res.OK() {
		s.logger.Warn("product create rejected", map[string]interface{}{"errors": res.Errors()})
		return domain.Product{}, res.Err()
	}

	product := domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       validator.Deref(in.Stock),
		Category:    strings.TrimSpace(in.Category),
		Images:      in.Images,
		IsActive:    true,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, apperror.WithMessage(err, messages.ProductCreateFailed)
	}

	s.logger.Info("product created", map[string]interface{}{"product_id": created.ID})
	return created, nil
}

func validateUpdate(id string, upd domain.ProductUpdate) validator.Result {
	return validator.All(
		validator.UUID(id, messages.InvalidID("Product ID")),
		validator.Optional(upd.Name != nil, validator.NotEmpty(validator.Deref(upd.Name), messages.NotEmpty("Product name"))),
		validator.Optional(upd.Description != nil, validator.NotEmpty(validator.Deref(upd.Description), messages.NotEmpty("Description"))),
		validator.Optional(upd.Price != nil, validator.PositiveDecimal(validator.Deref(upd.Price), messages.PositiveNumber("Price"))),
		validator.Optional(upd.Category != nil, validator.NotEmpty(validator.Deref(upd.Category), messages.NotEmpty("Category"))),
		validator.Optional(upd.Stock != nil, validator.NonNegativeInt(validator.Deref(upd.Stock), messages.NonNegative("Stock"))),
	)
}

// Update changes only the fields present in upd.
func (s *Service) Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	if res := validateUpdate(id, upd); !res.OK() {
		s.logger.Warn("product update rejected", map[string]interface{}{"product_id": id, "errors": res.Errors()})
		return domain.Product{}, res.Err()
	}

	var (
		product domain.Product
		err     error
	)
	if upd.Empty() {
		product, err = s.repo.FindByID(ctx, id)
	} else {
		product, err = s.repo.Update(ctx, id, upd)
	}
	if err != nil {
		return domain.Product{}, apperror.WithMessage(err, messages.ProductUpdateFailed)
	}
	return product, nil
}

// Delete removes a product that no order references.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validator.ValidID(id, "Product ID"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.WithMessage(err, messages.ProductDeleteFailed)
	}
	s.logger.Info("product deleted", map[string]interface{}{"product_id": id})
	return nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := validator.ValidID(id, "Product ID"); err != nil {
		return domain.Product{}, err
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, apperror.WithMessage(err, messages.ProductFetchFailed)
	}
	return product, nil
}

// List returns one page of products. Default order is by name, ascending.
func (s *Service) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Product], error) {
	query = query.Normalize()
	products, total, err := s.repo.List(ctx, query)
	if err != nil {
		return domain.Page[domain.Product]{}, apperror.WithMessage(err, messages.ProductListFailed)
	}
	return domain.Page[domain.Product]{Items: products, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

package cartservice

import (
	"context"
	"errors"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/events"
	"storefront/internal/pkg/logger"
	"storefront/internal/validator"
)

// CartRepository is the persistence contract of carts.
type CartRepository interface {
	EnsureForOwner(ctx context.Context, userID string) (string, error)
	AddItem(ctx context.Context, cartID, productID string, quantity, limit int) error
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) (domain.Cart, error)
	FindByID(ctx context.Context, id string) (domain.Cart, error)
	FindByOwner(ctx context.Context, userID string) (domain.Cart, error)
	List(ctx context.Context) ([]domain.Cart, error)
	Delete(ctx context.Context, id string) error
}

// ProductLookup answers which referenced products do not exist.
type ProductLookup interface {
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
}

// Service manages shopping carts.
type Service struct {
	carts     CartRepository
	products  ProductLookup
	publisher events.Publisher
	logger    logger.Logger
}

// NewService creates the cart service.
func NewService(carts CartRepository, products ProductLookup, publisher events.Publisher, log logger.Logger) *Service {
	return &Service{carts: carts, products: products, publisher: publisher, logger: log}
}

func cartLines(items []domain.CartItem) []validator.Line {
	lines := make([]validator.Line, len(items))
	for i, it := range items {
		lines[i] = validator.Line{ProductID: it.Product, Quantity: it.Quantity}
	}
	return lines
}

func validateAdd(ctx context.Context, products ProductLookup, in domain.AddToCart) (validator.Result, error) {
	idCheck := validator.NotEmpty(in.ProductID, messages.NotEmpty("Product ID"))
	if idCheck == "" {
		idCheck = validator.UUID(in.ProductID, messages.InvalidID("Product ID"))
	}
	res := validator.All(
		idCheck,
		validator.IntBetween(in.Quantity, 1, domain.MaxLineQuantity, messages.QuantityRange("Quantity", domain.MaxLineQuantity)),
	)
	if !res.OK() {
		return res, nil
	}

	missing, err := products.MissingIDs(ctx, []string{in.ProductID})
	if err != nil {
		return validator.Result{}, err
	}
	if len(missing) > 0 {
		return validator.Fail(messages.ProductNotFound), nil
	}
	return validator.Pass(), nil
}

// AddProduct puts quantity units of a product in the user's cart. The cart is created on
// first use; a product already in the cart has its quantity increased instead of getting a
// second line item.
func (s *Service) AddProduct(ctx context.Context, userID string, in domain.AddToCart) (domain.Cart, error) {
	res, err := validateAdd(ctx, s.products, in)
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartAddFailed)
	}
	if !res.OK() {
		s.logger.Warn("add to cart rejected", map[string]interface{}{"user_id": userID, "errors": res.Errors()})
		return domain.Cart{}, res.Err()
	}

	cartID, err := s.carts.EnsureForOwner(ctx, userID)
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartAddFailed)
	}

	err = s.carts.AddItem(ctx, cartID, in.ProductID, in.Quantity, domain.MaxLineQuantity)
	if errors.Is(err, domain.ErrLineLimit) {
		return domain.Cart{}, apperror.NewValidationError(messages.CartQuantityExceeded)
	}
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartAddFailed)
	}

	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartAddFailed)
	}

	events.Emit(ctx, s.publisher, s.logger, events.New(events.CartItemAdded, cart.ID, map[string]interface{}{
		"userId":    userID,
		"productId": in.ProductID,
		"quantity":  in.Quantity,
	}))
	return cart, nil
}

func validateUpdate(ctx context.Context, carts CartRepository, products ProductLookup, id string, in domain.CartReplace) (validator.Result, error) {
	if msg := validator.UUID(id, messages.InvalidID("Cart ID")); msg != "" {
		return validator.Fail(msg), nil
	}
	if _, err := carts.FindByID(ctx, id); err != nil {
		return validator.Result{}, err
	}

	lines := cartLines(in.Products)
	res := validator.Lines(lines, "Products", domain.MaxLineQuantity).Merge(validator.UniqueLines(lines))
	if !res.OK() {
		return res, nil
	}

	missing, err := products.MissingIDs(ctx, validator.LineProductIDs(lines))
	if err != nil {
		return validator.Result{}, err
	}
	return validator.MissingLines(lines, missing), nil
}

// Update replaces every line item of a cart.
func (s *Service) Update(ctx context.Context, id string, in domain.CartReplace) (domain.Cart, error) {
	res, err := validateUpdate(ctx, s.carts, s.products, id, in)
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartUpdateFailed)
	}
	if !res.OK() {
		s.logger.Warn("cart update rejected", map[string]interface{}{"cart_id": id, "errors": res.Errors()})
		return domain.Cart{}, res.Err()
	}

	cart, err := s.carts.ReplaceItems(ctx, id, in.Products)
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartUpdateFailed)
	}
	return cart, nil
}

// Delete removes a cart.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validator.ValidID(id, "Cart ID"); err != nil {
		return err
	}
	if err := s.carts.Delete(ctx, id); err != nil {
		return apperror.WithMessage(err, messages.CartDeleteFailed)
	}
	return nil
}

// Get returns one cart with its owner.
func (s *Service) Get(ctx context.Context, id string) (domain.Cart, error) {
	if err := validator.ValidID(id, "Cart ID"); err != nil {
		return domain.Cart{}, err
	}
	cart, err := s.carts.FindByID(ctx, id)
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartFetchFailed)
	}
	return cart, nil
}

// List returns every cart.
func (s *Service) List(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.carts.List(ctx)
	if err != nil {
		return nil, apperror.WithMessage(err, messages.CartListFailed)
	}
	return carts, nil
}

// Mine returns the cart of userID, or an empty unsaved cart when the user has none yet.
func (s *Service) Mine(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.carts.FindByOwner(ctx, userID)
	var notFound *apperror.NotFoundError
	if errors.As(err, &notFound) {
		return domain.Cart{User: domain.UserRef{ID: userID}, Products: []domain.CartItem{}}, nil
	}
	if err != nil {
		return domain.Cart{}, apperror.WithMessage(err, messages.CartFetchFailed)
	}
	return cart, nil
}

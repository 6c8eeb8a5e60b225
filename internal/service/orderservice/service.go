package orderservice

import (
	"context"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/events"
	"storefront/internal/pkg/logger"
	"storefront/internal/validator"
)

// OrderRepository is the persistence contract of orders.
type OrderRepository interface {
	Save(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id string, upd domain.OrderUpdate) (domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// ProductLookup answers which referenced products do not exist.
type ProductLookup interface {
	MissingIDs(ctx context.Context, ids []string) ([]string, error)
}

// Service manages orders.
type Service struct {
	orders    OrderRepository
	products  ProductLookup
	publisher events.Publisher
	logger    logger.Logger
}

// NewService creates the order service.
func NewService(orders OrderRepository, products ProductLookup, publisher events.Publisher, log logger.Logger) *Service {
	return &Service{orders: orders, products: products, publisher: publisher, logger: log}
}

func orderLines(items []domain.OrderItem) []validator.Line {
	lines := make([]validator.Line, len(items))
	for i, it := range items {
		lines[i] = validator.Line{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return lines
}

func checkProductsExist(ctx context.Context, products ProductLookup, lines []validator.Line) (validator.Result, error) {
	missing, err := products.MissingIDs(ctx, validator.LineProductIDs(lines))
	if err != nil {
		return validator.Result{}, err
	}
	return validator.MissingLines(lines, missing), nil
}

func validateCreate(ctx context.Context, products ProductLookup, in domain.OrderInput) (validator.Result, error) {
	lines := orderLines(in.Products)
	res := validator.Lines(lines, "Products", domain.MaxLineQuantity).Merge(
		validator.All(validator.PositiveDecimal(in.TotalAmount, messages.PositiveNumber("Total amount"))),
	)
	if !res.OK() {
		return res, nil
	}
	return checkProductsExist(ctx, products, lines)
}

// Create places an order for userID. The legacy single-product payload is accepted.
func (s *Service) Create(ctx context.Context, userID string, in domain.OrderInput) (domain.Order, error) {
	in = in.Normalize()

	res, err := validateCreate(ctx, s.products, in)
	if err != nil {
		return domain.Order{}, apperror.WithMessage(err, messages.OrderCreateFailed)
	}
	if !res.OK() {
		s.logger.Warn("order create rejected", map[string]interface{}{"user_id": userID, "errors": res.Errors()})
		return domain.Order{}, res.Err()
	}

	items := make([]domain.OrderItem, len(in.Products))
	for i, it := range in.Products {
		items[i] = domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	order, err := s.orders.Save(ctx, domain.Order{
		User:        domain.UserRef{ID: userID},
		Products:    items,
		TotalAmount: in.TotalAmount,
		Status:      domain.OrderPending,
	})
	if err != nil {
		return domain.Order{}, apperror.WithMessage(err, messages.OrderCreateFailed)
	}

	s.logger.Info("order created", map[string]interface{}{"order_id": order.ID, "user_id": userID})
	events.Emit(ctx, s.publisher, s.logger, events.New(events.OrderCreated, order.ID, order))
	return order, nil
}

func validateUpdate(ctx context.Context, orders OrderRepository, products ProductLookup, id string, upd domain.OrderUpdate) (validator.Result, error) {
	if msg := validator.UUID(id, messages.InvalidID("Order ID")); msg != "" {
		return validator.Fail(msg), nil
	}
	if _, err := orders.FindByID(ctx, id); err != nil {
		return validator.Result{}, err
	}

	res := validator.All(
		validator.Optional(upd.TotalAmount != nil, validator.PositiveDecimal(validator.Deref(upd.TotalAmount), messages.PositiveNumber("Total amount"))),
		validator.Optional(upd.Status != nil, validator.OneOf(validator.Deref(upd.Status), domain.OrderStatuses, messages.OneOf("Status", domain.OrderStatuses))),
	)
	if upd.Products == nil {
		return res, nil
	}

	lines := orderLines(*upd.Products)
	res = validator.Lines(lines, "Products", domain.MaxLineQuantity).Merge(res)
	if !res.OK() {
		return res, nil
	}
	return checkProductsExist(ctx, products, lines)
}

// Update changes the fields present in upd.
func (s *Service) Update(ctx context.Context, id string, upd domain.OrderUpdate) (domain.Order, error) {
	res, err := validateUpdate(ctx, s.orders, s.products, id, upd)
	if err != nil {
		return domain.Order{}, apperror.WithMessage(err, messages.OrderUpdateFailed)
	}
	if !res.OK() {
		s.logger.Warn("order update rejected", map[string]interface{}{"order_id": id, "errors": res.Errors()})
		return domain.Order{}, res.Err()
	}

	order, err := s.orders.Update(ctx, id, upd)
	if err != nil {
		return domain.Order{}, apperror.WithMessage(err, messages.OrderUpdateFailed)
	}

	events.Emit(ctx, s.publisher, s.logger, events.New(events.OrderUpdated, order.ID, order))
	return order, nil
}

// Delete removes an order together with its payments.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validator.ValidID(id, "Order ID"); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return apperror.WithMessage(err, messages.OrderDeleteFailed)
	}

	s.logger.Info("order deleted", map[string]interface{}{"order_id": id})
	events.Emit(ctx, s.publisher, s.logger, events.New(events.OrderDeleted, id, nil))
	return nil
}

// Get returns one populated order.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	if err := validator.ValidID(id, "Order ID"); err != nil {
		return domain.Order{}, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, apperror.WithMessage(err, messages.OrderFetchFailed)
	}
	return order, nil
}

// List returns every order.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apperror.WithMessage(err, messages.OrderListFailed)
	}
	return orders, nil
}

package paymentservice

import (
	"context"
	"strings"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/events"
	"storefront/internal/pkg/logger"
	"storefront/internal/validator"
)

// PaymentRepository is the persistence contract of payments.
type PaymentRepository interface {
	Save(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindByID(ctx context.Context, id string) (domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.Payment, error)
	Delete(ctx context.Context, id string) error
}

// OrderLookup checks that a payment references a stored order.
type OrderLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service records payment attempts.
type Service struct {
	payments  PaymentRepository
	orders    OrderLookup
	publisher events.Publisher
	logger    logger.Logger
}

// NewService creates the payment service.
func NewService(payments PaymentRepository, orders OrderLookup, publisher events.Publisher, log logger.Logger) *Service {
	return &Service{payments: payments, orders: orders, publisher: publisher, logger: log}
}

func validateCreate(ctx context.Context, orders OrderLookup, in domain.PaymentInput) (validator.Result, error) {
	orderCheck := validator.NotEmpty(in.Order, messages.NotEmpty("Order"))
	if orderCheck == "" {
		orderCheck = validator.UUID(in.Order, messages.InvalidID("Order"))
	}
	res := validator.All(
		orderCheck,
		validator.PositiveDecimal(in.Amount, messages.PositiveNumber("Amount")),
		validator.OneOf(in.Method, domain.PaymentMethods, messages.OneOf("Method", domain.PaymentMethods)),
	)
	if !res.OK() {
		return res, nil
	}

	ok, err := orders.Exists(ctx, in.Order)
	if err != nil {
		return validator.Result{}, err
	}
	if !ok {
		return validator.Fail(messages.PaymentOrderMissing), nil
	}
	return validator.Pass(), nil
}

// Create records a pending payment for an order.
func (s *Service) Create(ctx context.Context, in domain.PaymentInput) (domain.Payment, error) {
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))

	res, err := validateCreate(ctx, s.orders, in)
	if err != nil {
		return domain.Payment{}, apperror.WithMessage(err, messages.PaymentCreateFailed)
	}
	if !res.OK() {
		s.logger.Warn("payment create rejected", map[string]interface{}{"order_id": in.Order, "errors": res.Errors()})
		return domain.Payment{}, res.Err()
	}

	payment, err := s.payments.Save(ctx, domain.Payment{
		Order:         domain.OrderRef{ID: in.Order},
		Amount:        in.Amount,
		Method:        in.Method,
		Status:        domain.PaymentPending,
		TransactionID: strings.TrimSpace(in.TransactionID),
	})
	if err != nil {
		return domain.Payment{}, apperror.WithMessage(err, messages.PaymentCreateFailed)
	}

	s.logger.Info("payment created", map[string]interface{}{"payment_id": payment.ID, "order_id": in.Order})
	events.Emit(ctx, s.publisher, s.logger, events.New(events.PaymentCreated, payment.ID, payment))
	return payment, nil
}

func validateStatus(id string, in domain.PaymentStatusUpdate) validator.Result {
	statusCheck := validator.NotEmpty(in.Status, messages.NotEmpty("Status"))
	if statusCheck == "" {
		statusCheck = validator.OneOf(in.Status, domain.PaymentStatuses, messages.OneOf("Status", domain.PaymentStatuses))
	}
	return validator.All(
		validator.UUID(id, messages.InvalidID("Payment ID")),
		statusCheck,
	)
}

// UpdateStatus moves a payment to a new status.
func (s *Service) UpdateStatus(ctx context.Context, id string, in domain.PaymentStatusUpdate) (domain.Payment, error) {
	if res := validateStatus(id, in); !res.OK() {
		s.logger.Warn("payment update rejected", map[string]interface{}{"payment_id": id, "errors": res.Errors()})
		return domain.Payment{}, res.Err()
	}

	payment, err := s.payments.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return domain.Payment{}, apperror.WithMessage(err, messages.PaymentUpdateFailed)
	}

	events.Emit(ctx, s.publisher, s.logger, events.New(events.PaymentUpdated, payment.ID, map[string]string{
		"orderId": payment.Order.ID,
		"status":  payment.Status,
	}))
	return payment, nil
}

// Delete removes a payment.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validator.ValidID(id, "Payment ID"); err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return apperror.WithMessage(err, messages.PaymentDeleteFailed)
	}
	return nil
}

// Get returns one payment with its order.
func (s *Service) Get(ctx context.Context, id string) (domain.Payment, error) {
	if err := validator.ValidID(id, "Payment ID"); err != nil {
		return domain.Payment{}, err
	}
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, apperror.WithMessage(err, messages.PaymentFetchFailed)
	}
	return payment, nil
}

// List returns every payment.
func (s *Service) List(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, apperror.WithMessage(err, messages.PaymentListFailed)
	}
	return payments, nil
}

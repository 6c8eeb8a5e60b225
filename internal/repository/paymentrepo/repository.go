package paymentrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const paymentSelect = `SELECT p.id, p.order_id, o.user_id, o.total_amount, o.status,
	p.amount, p.method, p.status, COALESCE(p.transaction_id, ''), p.created_at, p.updated_at
	FROM payments p JOIN orders o ON o.id = p.order_id`

// PaymentRepository stores payment attempts.
type PaymentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPaymentRepository creates a PaymentRepository.
func NewPaymentRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PaymentRepository {
	return &PaymentRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var p domain.Payment
	var total decimal.Decimal
	err := row.Scan(
		&p.ID,
		&p.Order.ID,
		&p.Order.User,
		&total,
		&p.Order.Status,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Order.TotalAmount = &total
	return p, err
}

// Save inserts the payment and returns it populated with its order.
func (r *PaymentRepository) Save(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	payment.ID = uuid.NewString()
	now := time.Now().UTC()

	var txID interface{}
	if payment.TransactionID != "" {
		txID = payment.TransactionID
	}

	const q = `INSERT INTO payments (id, order_id, amount, method, status, transaction_id, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.DB.ExecContext(ctxTimeout, q, payment.ID, payment.Order.ID, payment.Amount, payment.Method, payment.Status, txID, now)
	if err != nil {
		if database.IsForeignKeyViolation(err, "") {
			return domain.Payment{}, apperror.NewValidationError(messages.PaymentOrderMissing)
		}
		r.logger.Error("failed to insert payment", err)
		return domain.Payment{}, apperror.NewDBError("failed to insert payment", err)
	}

	return r.findOne(ctxTimeout, payment.ID)
}

// FindByID returns the payment populated with its order's owner, total and status.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (domain.Payment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return r.findOne(ctxTimeout, id)
}

func (r *PaymentRepository) findOne(ctx context.Context, id string) (domain.Payment, error) {
	p, err := scanPayment(r.DB.QueryRowContext(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Payment{}, apperror.NewNotFoundError(messages.PaymentNotFound)
	}
	if err != nil {
		return domain.Payment{}, apperror.NewDBError("failed to find payment", err)
	}
	return p, nil
}

// List returns every payment, newest first.
func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, paymentSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, apperror.NewDBError("failed to list payments", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate payments", err)
	}
	return payments, nil
}

// UpdateStatus sets the payment status.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string) (domain.Payment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return domain.Payment{}, apperror.NewDBError("failed to update payment", err)
	}
	if err := database.AffectedOne(res, apperror.NewNotFoundError(messages.PaymentNotFound)); err != nil {
		return domain.Payment{}, err
	}
	return r.findOne(ctxTimeout, id)
}

// Delete removes the payment.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete payment", err)
	}
	return database.AffectedOne(res, apperror.NewNotFoundError(messages.PaymentNotFound))
}

package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const orderSelect = `SELECT o.id, o.user_id, u.name, u.email, o.total_amount, o.status, o.created_at, o.updated_at
	FROM orders o JOIN users u ON u.id = o.user_id`

// OrderRepository stores orders and their line items.
type OrderRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewOrderRepository creates an OrderRepository.
func NewOrderRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *OrderRepository {
	return &OrderRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.User.ID, &o.User.Name, &o.User.Email, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	o.Products = []domain.OrderItem{}
	return o, err
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID string, items []domain.OrderItem) error {
	for _, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3)`,
			orderID, it.ProductID, it.Quantity)
		if err != nil {
			return apperror.NewDBError("failed to insert order item", err)
		}
	}
	return nil
}

// Save writes the order and its line items in one transaction and returns the populated order.
func (r *OrderRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	order.ID = uuid.NewString()
	now := time.Now().UTC()

	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		const q = `INSERT INTO orders (id, user_id, total_amount, status, created_at, updated_at)
		           VALUES ($1, $2, $3, $4, $5, $5)`
		if _, err := tx.ExecContext(ctxTimeout, q, order.ID, order.User.ID, order.TotalAmount, order.Status, now); err != nil {
			return apperror.NewDBError("failed to insert order", err)
		}
		return insertItems(ctxTimeout, tx, order.ID, order.Products)
	})
	if err != nil {
		r.logger.Error("failed to save order", err)
		return domain.Order{}, err
	}

	return r.findOne(ctxTimeout, order.ID)
}

// FindByID returns the order populated with its owner and product names and prices.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return r.findOne(ctxTimeout, id)
}

func (r *OrderRepository) findOne(ctx context.Context, id string) (domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, apperror.NewNotFoundError(messages.OrderNotFound)
	}
	if err != nil {
		return domain.Order{}, apperror.NewDBError("failed to find order", err)
	}

	items, err := r.items(ctx, []string{order.ID})
	if err != nil {
		return domain.Order{}, err
	}
	if its, ok := items[order.ID]; ok {
		order.Products = its
	}
	return order, nil
}

// Exists reports whether an order with id is stored.
func (r *OrderRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var ok bool
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, apperror.NewDBError("failed to check order", err)
	}
	return ok, nil
}

// List returns every order, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, orderSelect+` ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, apperror.NewDBError("failed to list orders", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate orders", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.items(ctxTimeout, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if its, ok := items[orders[i].ID]; ok {
			orders[i].Products = its
		}
	}
	return orders, nil
}

func (r *OrderRepository) items(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `SELECT oi.order_id, oi.product_id, oi.quantity, p.name, p.price
	           FROM order_items oi JOIN products p ON p.id = oi.product_id
	           WHERE oi.order_id = ANY($1::uuid[])
	           ORDER BY oi.position`

	rows, err := r.DB.QueryContext(ctx, q, pq.Array(orderIDs))
	if err != nil {
		return nil, apperror.NewDBError("failed to load order items", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var it domain.OrderItem
		ref := &domain.ProductRef{}
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &ref.Name, &ref.Price); err != nil {
			return nil, apperror.NewDBError("failed to scan order item", err)
		}
		ref.ID = it.ProductID
		it.Product = ref
		out[orderID] = append(out[orderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate order items", err)
	}
	return out, nil
}

// Update applies the present fields of upd. A new product list replaces the old one.
func (r *OrderRepository) Update(ctx context.Context, id string, upd domain.OrderUpdate) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		const q = `UPDATE orders
		           SET total_amount = COALESCE($1, total_amount),
		               status       = COALESCE($2, status),
		               updated_at   = $3
		           WHERE id = $4`

		var total interface{}
		if upd.TotalAmount != nil {
			total = *upd.TotalAmount
		}
		res, err := tx.ExecContext(ctxTimeout, q, total, upd.Status, time.Now().UTC(), id)
		if err != nil {
			return apperror.NewDBError("failed to update order", err)
		}
		if err := database.AffectedOne(res, apperror.NewNotFoundError(messages.OrderNotFound)); err != nil {
			return err
		}

		if upd.Products == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctxTimeout, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return apperror.NewDBError("failed to clear order items", err)
		}
		return insertItems(ctxTimeout, tx, id, *upd.Products)
	})
	if err != nil {
		return domain.Order{}, err
	}

	return r.findOne(ctxTimeout, id)
}

// Delete removes the order with its items and payments.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete order", err)
	}
	return database.AffectedOne(res, apperror.NewNotFoundError(messages.OrderNotFound))
}

package cartrepo

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

const cartSelect = `SELECT c.id, c.user_id, u.name, u.email, c.created_at, c.updated_at
	FROM carts c JOIN users u ON u.id = c.user_id`

// CartRepository stores carts and their line items.
type CartRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCartRepository creates a CartRepository.
func NewCartRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *CartRepository {
	return &CartRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCart(row rowScanner) (domain.Cart, error) {
	var c domain.Cart
	err := row.Scan(&c.ID, &c.User.ID, &c.User.Name, &c.User.Email, &c.CreatedAt, &c.UpdatedAt)
	c.Products = []domain.CartItem{}
	return c, err
}

// EnsureForOwner returns the id of the user's cart, creating an empty one when absent.
func (r *CartRepository) EnsureForOwner(ctx context.Context, userID string) (string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	const q = `INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $3)
	           ON CONFLICT ON CONSTRAINT carts_user_id_key DO UPDATE SET user_id = EXCLUDED.user_id
	           RETURNING id`

	var id string
	if err := r.DB.QueryRowContext(ctxTimeout, q, uuid.NewString(), userID, now).Scan(&id); err != nil {
		return "", apperror.NewDBError("failed to ensure cart", err)
	}
	return id, nil
}

// AddItem merges quantity into the cart's line item for productID, or appends a new line.
// The merge happens in one statement; a result above limit yields domain.ErrLineLimit and
// writes nothing.
func (r *CartRepository) AddItem(ctx context.Context, cartID, productID string, quantity, limit int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		const upsert = `INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		                ON CONFLICT ON CONSTRAINT cart_items_cart_product_key
		                DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		                WHERE cart_items.quantity + EXCLUDED.quantity <= $4`

		res, err := tx.ExecContext(ctxTimeout, upsert, cartID, productID, quantity, limit)
		if err != nil {
			return apperror.NewDBError("failed to add cart item", err)
		}
		// The insert path always writes one row. Zero rows means the conflict branch ran and its
		// WHERE rejected the merged quantity, so the existing line stays untouched.
		if err := database.AffectedOne(res, domain.ErrLineLimit); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctxTimeout, `UPDATE carts SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), cartID); err != nil {
			return apperror.NewDBError("failed to touch cart", err)
		}
		return nil
	})
}

// ReplaceItems swaps every line item of the cart for items, keeping their order.
func (r *CartRepository) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) (domain.Cart, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctxTimeout, `UPDATE carts SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), cartID)
		if err != nil {
			return apperror.NewDBError("failed to update cart", err)
		}
		if err := database.AffectedOne(res, apperror.NewNotFoundError(messages.CartNotFound)); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctxTimeout, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return apperror.NewDBError("failed to clear cart items", err)
		}
		for _, it := range items {
			_, err := tx.ExecContext(ctxTimeout,
				`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)`,
				cartID, it.Product, it.Quantity)
			if err != nil {
				return apperror.NewDBError("failed to insert cart item", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Cart{}, err
	}

	return r.findOne(ctxTimeout, cartSelect+` WHERE c.id = $1`, cartID)
}

// FindByID returns the cart with its owner and line items.
func (r *CartRepository) FindByID(ctx context.Context, id string) (domain.Cart, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return r.findOne(ctxTimeout, cartSelect+` WHERE c.id = $1`, id)
}

// FindByOwner returns the cart of userID.
func (r *CartRepository) FindByOwner(ctx context.Context, userID string) (domain.Cart, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return r.findOne(ctxTimeout, cartSelect+` WHERE c.user_id = $1`, userID)
}

func (r *CartRepository) findOne(ctx context.Context, query string, arg string) (domain.Cart, error) {
	cart, err := scanCart(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, apperror.NewNotFoundError(messages.CartNotFound)
	}
	if err != nil {
		return domain.Cart{}, apperror.NewDBError("failed to find cart", err)
	}

	items, err := r.items(ctx, []string{cart.ID})
	if err != nil {
		return domain.Cart{}, err
	}
	if its, ok := items[cart.ID]; ok {
		cart.Products = its
	}
	return cart, nil
}

// List returns every cart, oldest first.
func (r *CartRepository) List(ctx context.Context) ([]domain.Cart, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, cartSelect+` ORDER BY c.created_at, c.id`)
	if err != nil {
		return nil, apperror.NewDBError("failed to list carts", err)
	}
	defer rows.Close()

	carts := []domain.Cart{}
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan cart", err)
		}
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate carts", err)
	}
	if len(carts) == 0 {
		return carts, nil
	}

	ids := make([]string, len(carts))
	for i, c := range carts {
		ids[i] = c.ID
	}
	items, err := r.items(ctxTimeout, ids)
	if err != nil {
		return nil, err
	}
	for i := range carts {
		if its, ok := items[carts[i].ID]; ok {
			carts[i].Products = its
		}
	}
	return carts, nil
}

func (r *CartRepository) items(ctx context.Context, cartIDs []string) (map[string][]domain.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT cart_id, product_id, quantity FROM cart_items WHERE cart_id = ANY($1::uuid[]) ORDER BY position`,
		pq.Array(cartIDs))
	if err != nil {
		return nil, apperror.NewDBError("failed to load cart items", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.CartItem, len(cartIDs))
	for rows.Next() {
		var cartID string
		var it domain.CartItem
		if err := rows.Scan(&cartID, &it.Product, &it.Quantity); err != nil {
			return nil, apperror.NewDBError("failed to scan cart item", err)
		}
		out[cartID] = append(out[cartID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate cart items", err)
	}
	return out, nil
}

// Delete removes the cart and its line items.
func (r *CartRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete cart", err)
	}
	return database.AffectedOne(res, apperror.NewNotFoundError(messages.CartNotFound))
}

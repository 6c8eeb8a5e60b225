package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

// productCacheKey is the cache-aside key of a single product.
const productCacheKey = "product:%s"

const productColumns = `id, name, description, price, stock, category, images, is_active, created_at, updated_at`

var listSQL = database.ListSQL{
	SortColumns: map[string]string{
		"name":      "name",
		"price":     "price",
		"stock":     "stock",
		"category":  "category",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	DefaultSort:   "name",
	SearchColumns: []string{"name", "description"},
}

// ProductRepository reads and writes products in Postgres and caches single reads in Redis.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository wires the database, the cache and their timeouts.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Category,
		pq.Array(&p.Images),
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, err
}

// Save inserts a new product.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	product.ID = uuid.NewString()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}

	const q = `INSERT INTO products (` + productColumns + `)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(ctxTimeout, q,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Category,
		pq.Array(product.Images),
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert product", err)
		return domain.Product{}, apperror.NewDBError("failed to insert product", err)
	}

	return product, nil
}

// FindByID reads through the cache. Cache failures are logged and fall back to the database.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	cached, err := r.Cache.Get(ctxTimeout, key)
	switch {
	case err == nil:
		if json.Unmarshal([]byte(cached), &product) == nil {
			return product, nil
		}
		r.logger.Warn("discarding unreadable cached product", map[string]interface{}{"key": key})
	case !errors.Is(err, cache.ErrCacheMiss):
		r.logger.Warn("product cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err = scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewNotFoundError(messages.ProductNotFound)
	}
	if err != nil {
		return domain.Product{}, apperror.NewDBError("failed to find product", err)
	}

	if data, err := json.Marshal(product); err == nil {
		if err := r.Cache.Set(ctxTimeout, key, data, r.CacheTTL); err != nil {
			r.logger.Warn("product cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	return product, nil
}

// MissingIDs returns the ids, in input order, that match no product.
func (r *ProductRepository) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id FROM products WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, apperror.NewDBError("failed to look up products", err)
	}
	defer rows.Close()

	found := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewDBError("failed to scan product id", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate product ids", err)
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// List returns one page of products and the number of matches before paging.
func (r *ProductRepository) List(ctx context.Context, query domain.ListQuery) ([]domain.Product, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := listSQL.Where(query.Search, 1)
	if where != "" {
		where = " WHERE " + where
	}

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperror.NewDBError("failed to count products", err)
	}

	q := fmt.Sprintf(`SELECT %s FROM products%s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, listSQL.OrderBy(query.Sort, query.Descending(false)), len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctxTimeout, q, append(args, query.Limit, query.Offset())...)
	if err != nil {
		return nil, 0, apperror.NewDBError("failed to list products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, query.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, apperror.NewDBError("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewDBError("failed to iterate products", err)
	}

	return products, total, nil
}

// Update writes only the fields present in upd and evicts the cached copy.
func (r *ProductRepository) Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	set := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.Stock != nil {
		set("stock", *upd.Stock)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Images != nil {
		images := *upd.Images
		if images == nil {
			images = []string{}
		}
		set("images", pq.Array(images))
	}
	if upd.IsActive != nil {
		set("is_active", *upd.IsActive)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns)
	product, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewNotFoundError(messages.ProductNotFound)
	}
	if err != nil {
		return domain.Product{}, apperror.NewDBError("failed to update product", err)
	}

	r.evict(ctxTimeout, id)
	return product, nil
}

// Delete removes the product. Products referenced by an order yield a ConflictError.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err, "order_items_product_id_fkey") {
			return apperror.NewConflictError(messages.ProductInUse)
		}
		return apperror.NewDBError("failed to delete product", err)
	}
	if err := database.AffectedOne(res, apperror.NewNotFoundError(messages.ProductNotFound)); err != nil {
		return err
	}

	r.evict(ctxTimeout, id)
	return nil
}

func (r *ProductRepository) evict(ctx context.Context, id string) {
	key := fmt.Sprintf(productCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("product cache eviction failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

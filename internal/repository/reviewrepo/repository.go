package reviewrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const reviewSelect = `SELECT r.id, r.product_id, r.user_id, u.name, u.email, r.rating, r.comment, r.created_at, r.updated_at
	FROM reviews r JOIN users u ON u.id = r.user_id`

// ReviewRepository stores product reviews.
type ReviewRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewReviewRepository creates a ReviewRepository.
func NewReviewRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ReviewRepository {
	return &ReviewRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.Product, &rv.User.ID, &rv.User.Name, &rv.User.Email,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

// Save inserts the review and returns it with its author populated.
func (r *ReviewRepository) Save(ctx context.Context, review domain.Review) (domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	review.ID = uuid.NewString()
	now := time.Now().UTC()

	const q = `INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $6)`
	if _, err := r.DB.ExecContext(ctxTimeout, q, review.ID, review.Product, review.User.ID, review.Rating, review.Comment, now); err != nil {
		r.logger.Error("failed to insert review", err)
		return domain.Review{}, apperror.NewDBError("failed to insert review", err)
	}

	saved, err := scanReview(r.DB.QueryRowContext(ctxTimeout, reviewSelect+` WHERE r.id = $1`, review.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, apperror.NewNotFoundError(messages.ReviewNotFound)
	}
	if err != nil {
		return domain.Review{}, apperror.NewDBError("failed to read review", err)
	}
	return saved, nil
}

// FindByProduct returns the reviews of a product, newest first.
func (r *ReviewRepository) FindByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, reviewSelect+` WHERE r.product_id = $1 ORDER BY r.created_at DESC, r.id DESC`, productID)
	if err != nil {
		return nil, apperror.NewDBError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan review", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate reviews", err)
	}
	return reviews, nil
}

// Delete removes the review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete review", err)
	}
	return database.AffectedOne(res, apperror.NewNotFoundError(messages.ReviewNotFound))
}

package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/logger"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

var listSQL = database.ListSQL{
	SortColumns: map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	DefaultSort:   "createdAt",
	SearchColumns: []string{"name", "email"},
}

// UserRepository is the Postgres store for users.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Save inserts a new user. A duplicate e-mail yields domain.ErrDuplicateEmail.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	const q = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, q, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		r.logger.Error("failed to insert user", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Debug("user saved", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// FindByID returns the user or a NotFoundError.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(messages.UserNotFound)
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("failed to find user by id", err)
	}
	return u, nil
}

// FindByEmail returns the user registered with email or a NotFoundError.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(messages.UserNotFound)
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("failed to find user by email", err)
	}
	return u, nil
}

// EmailTaken reports whether email belongs to a user other than exceptID.
// An empty exceptID checks every user.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var taken bool
	var err error
	if exceptID == "" {
		err = r.DB.QueryRowContext(ctxTimeout,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&taken)
	} else {
		err = r.DB.QueryRowContext(ctxTimeout,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, exceptID).Scan(&taken)
	}
	if err != nil {
		return false, apperror.NewDBError("failed to check email", err)
	}
	return taken, nil
}

// List returns one page of users and the total number of matches.
func (r *UserRepository) List(ctx context.Context, query domain.ListQuery) ([]domain.User, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := listSQL.Where(query.Search, 1)
	if where != "" {
		where = " WHERE " + where
	}

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperror.NewDBError("failed to count users", err)
	}

	q := fmt.Sprintf(`SELECT %s FROM users%s %s LIMIT $%d OFFSET $%d`,
		userColumns, where, listSQL.OrderBy(query.Sort, query.Descending(true)), len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctxTimeout, q, append(args, query.Limit, query.Offset())...)
	if err != nil {
		return nil, 0, apperror.NewDBError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, query.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, apperror.NewDBError("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewDBError("failed to iterate users", err)
	}

	return users, total, nil
}

// Update applies the non-nil changes and returns the stored user.
func (r *UserRepository) Update(ctx context.Context, id string, changes domain.UserChanges) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if changes.Name != nil {
		add("name", *changes.Name)
	}
	if changes.Email != nil {
		add("email", *changes.Email)
	}
	if changes.PasswordHash != nil {
		add("password_hash", *changes.PasswordHash)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctxTimeout, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(messages.UserNotFound)
	}
	if err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		return domain.User{}, apperror.NewDBError("failed to update user", err)
	}
	return u, nil
}

// Delete removes the user; its cart, orders and reviews go with it.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("failed to delete user", err)
	}
	return database.AffectedOne(res, apperror.NewNotFoundError(messages.UserNotFound))
}

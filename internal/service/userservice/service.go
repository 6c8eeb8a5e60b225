package userservice

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
	"storefront/internal/validator"
)

// UserRepository is the persistence contract of the user service.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	EmailTaken(ctx context.Context, email string, exceptID string) (bool, error)
	List(ctx context.Context, query domain.ListQuery) ([]domain.User, int, error)
	Update(ctx context.Context, id string, changes domain.UserChanges) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(userID string, email string) (string, error)
}

// Service implements user signup, profile management and login.
type Service struct {
	repo     UserRepository
	tokens   TokenIssuer
	logger   logger.Logger
	hashCost int
}

// NewService creates the user service.
func NewService(repo UserRepository, tokens TokenIssuer, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		logger:   log,
		hashCost: bcrypt.DefaultCost,
	}
}

func validateCreate(ctx context.Context, repo UserRepository, in domain.UserRegistration) (validator.Result, error) {
	res := validator.All(
		validator.NotEmpty(in.Name, messages.NotEmpty("Name")),
		validator.Email(in.Email, messages.UserInvalidEmail),
		validator.Password(in.Password, messages.UserInvalidPassword),
	)
	if !res.OK() {
		return res, nil
	}

	taken, err := repo.EmailTaken(ctx, in.Email, "")
	if err != nil {
		return validator.Result{}, err
	}
	if taken {
		return validator.Fail(messages.UserEmailExists), nil
	}
	return validator.Pass(), nil
}

// Create registers a user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, in domain.UserRegistration) (domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	res, err := validateCreate(ctx, s.repo, in)
	if err != nil {
		return domain.User{}, apperror.WithMessage(err, messages.UserCreateFailed)
	}
	if !res.OK() {
		s.logger.Warn("user signup rejected", map[string]interface{}{"errors": res.Errors()})
		return domain.User{}, res.Err()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError(messages.UserCreateFailed, err)
	}

	user, err := s.repo.Save(ctx, domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return domain.User{}, apperror.NewValidationError(messages.UserEmailExists)
	}
	if err != nil {
		return domain.User{}, apperror.WithMessage(err, messages.UserCreateFailed)
	}

	s.logger.Info("user created", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

func validateUpdate(ctx context.Context, repo UserRepository, id string, in domain.UserUpdate) (validator.Result, error) {
	if msg := validator.UUID(id, messages.InvalidID("User ID")); msg != "" {
		return validator.Fail(msg), nil
	}
	if _, err := repo.FindByID(ctx, id); err != nil {
		return validator.Result{}, err
	}

	res := validator.All(
		validator.Optional(in.Name != nil, validator.NotEmpty(validator.Deref(in.Name), messages.NotEmpty("Name"))),
		validator.Optional(in.Email != nil, validator.Email(validator.Deref(in.Email), messages.UserInvalidEmail)),
		validator.Optional(in.Password != nil, validator.Password(validator.Deref(in.Password), messages.UserInvalidPassword)),
	)
	if !res.OK() || in.Email == nil {
		return res, nil
	}

	taken, err := repo.EmailTaken(ctx, *in.Email, id)
	if err != nil {
		return validator.Result{}, err
	}
	if taken {
		return validator.Fail(messages.UserEmailTaken), nil
	}
	return validator.Pass(), nil
}

// Update changes the fields present in the payload. A new password is re-hashed.
func (s *Service) Update(ctx context.Context, id string, in domain.UserUpdate) (domain.User, error) {
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		in.Email = &email
	}

	res, err := validateUpdate(ctx, s.repo, id, in)
	if err != nil {
		return domain.User{}, apperror.WithMessage(err, messages.UserUpdateFailed)
	}
	if !res.OK() {
		s.logger.Warn("user update rejected", map[string]interface{}{"user_id": id, "errors": res.Errors()})
		return domain.User{}, res.Err()
	}

	changes := domain.UserChanges{Name: in.Name, Email: in.Email}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.hashCost)
		if err != nil {
			return domain.User{}, apperror.NewInternalError(messages.UserUpdateFailed, err)
		}
		h := string(hash)
		changes.PasswordHash = &h
	}

	user, err := s.repo.Update(ctx, id, changes)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return domain.User{}, apperror.NewValidationError(messages.UserEmailTaken)
	}
	if err != nil {
		return domain.User{}, apperror.WithMessage(err, messages.UserUpdateFailed)
	}
	return user, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validator.ValidID(id, "User ID"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.WithMessage(err, messages.UserDeleteFailed)
	}
	s.logger.Info("user deleted", map[string]interface{}{"user_id": id})
	return nil
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	if err := validator.ValidID(id, "User ID"); err != nil {
		return domain.User{}, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, apperror.WithMessage(err, messages.UserFetchFailed)
	}
	return user, nil
}

// List returns one page of users. Default order is newest first.
func (s *Service) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.User], error) {
	query = query.Normalize()
	users, total, err := s.repo.List(ctx, query)
	if err != nil {
		return domain.Page[domain.User]{}, apperror.WithMessage(err, messages.UserListFailed)
	}
	return domain.Page[domain.User]{Items: users, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

// Login checks the credentials and issues a session token.
// Unknown e-mail is a NotFoundError, a wrong password an UnauthorizedError.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	res := validator.All(
		validator.NotEmpty(creds.Email, messages.NotEmpty("Email")),
		validator.NotEmpty(creds.Password, messages.NotEmpty("Password")),
	)
	if !res.OK() {
		return "", res.Err()
	}

	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Warn("login for unknown email", nil)
			return "", apperror.NewNotFoundError(messages.LoginUnknownUser)
		}
		return "", apperror.WithMessage(err, messages.LoginFailed)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Warn("login with wrong password", map[string]interface{}{"user_id": user.ID})
		return "", apperror.NewUnauthorizedError(messages.LoginBadPassword)
	}

	tok, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", apperror.NewInternalError(messages.LoginFailed, err)
	}
	return tok, nil
}

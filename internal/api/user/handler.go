package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/api/response"
	"storefront/internal/domain"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
)

// UserService is what the handler needs from the service layer.
type UserService interface {
	Create(ctx context.Context, in domain.UserRegistration) (domain.User, error)
	Update(ctx context.Context, id string, in domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.User], error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
}

// UserEnvelope is the body of user create, update and get.
type UserEnvelope struct {
	Message string      `json:"message,omitempty" example:"User created successfully."`
	User    domain.User `json:"user"`
}

// UserPage is the body of the user list.
type UserPage struct {
	Users []domain.User `json:"users"`
	Total int           `json:"total" example:"12"`
	Page  int           `json:"page" example:"1"`
	Limit int           `json:"limit" example:"10"`
}

// TokenEnvelope is the body of a successful login.
type TokenEnvelope struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token"`
}

// Handler groups the user endpoints.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler creates the user handler.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// LoginHandler godoc
// @Summary Log in
// @Description Checks e-mail and password and issues a JWT valid for one hour.
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body domain.Credentials true "E-mail and password"
// @Success 200 {object} TokenEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse "Wrong password"
// @Failure 404 {object} domain.MessageResponse "Unknown e-mail"
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /user/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := response.Decode(r, &creds); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	tok, err := h.Service.Login(r.Context(), creds)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, TokenEnvelope{Message: messages.LoginSuccess, Token: tok})
}

// CreateUserHandler godoc
// @Summary Sign up
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "New user"
// @Success 201 {object} UserEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse "Invalid fields or e-mail already registered"
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /user [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.UserRegistration
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	user, err := h.Service.Create(r.Context(), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, UserEnvelope{Message: messages.UserCreated, User: user})
}

// ListUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page, from 1" default(1)
// @Param limit query int false "Page size, at most 100" default(10)
// @Param search query string false "Case-insensitive match on name or e-mail"
// @Param sort query string false "name, email, createdAt or updatedAt" default(createdAt)
// @Param order query string false "asc or desc" default(desc)
// @Success 200 {object} UserPage
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /user [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.List(r.Context(), response.ListQuery(r))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, UserPage{Users: page.Items, Total: page.Total, Page: page.Page, Limit: page.Limit})
}

// GetUserHandler godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 404 {object} domain.MessageResponse
// @Router /user/{id} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, UserEnvelope{User: user})
}

// UpdateUserHandler godoc
// @Summary Update a user
// @Description Only the fields sent are changed. A new password is re-hashed.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body domain.UserUpdate true "Fields to change"
// @Success 200 {object} UserEnvelope
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /user/{id} [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.UserUpdate
	if err := response.Decode(r, &in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	user, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, UserEnvelope{Message: messages.UserUpdated, User: user})
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ValidationErrorResponse
// @Failure 401 {object} domain.MessageResponse
// @Failure 404 {object} domain.MessageResponse
// @Failure 500 {object} domain.InternalErrorResponse
// @Router /user/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Message(messages.UserDeleted))
}

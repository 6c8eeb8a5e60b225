package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/api/cart"
	"storefront/internal/api/order"
	"storefront/internal/api/payment"
	"storefront/internal/api/product"
	"storefront/internal/api/review"
	"storefront/internal/api/user"
	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/token"
)

const (
	cartID    = "5f1c1f0e-8a3b-4e0f-9a53-8c9a8a7b1c2d"
	productID = "0b6f3a4c-2d1e-4f5a-8b7c-9d0e1f2a3b4c"
	userID    = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, in domain.UserRegistration) (domain.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockUsers) Update(ctx context.Context, id string, in domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockUsers) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }
func (m *mockUsers) Get(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *mockUsers) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.User], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.Page[domain.User]), args.Error(1)
}
func (m *mockUsers) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Product), args.Error(1)
}
func (m *mockProducts) Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.Product), args.Error(1)
}
func (m *mockProducts) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }
func (m *mockProducts) Get(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}
func (m *mockProducts) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Product], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.Page[domain.Product]), args.Error(1)
}

type mockCarts struct{ mock.Mock }

func (m *mockCarts) AddProduct(ctx context.Context, uid string, in domain.AddToCart) (domain.Cart, error) {
	args := m.Called(ctx, uid, in)
	return args.Get(0).(domain.Cart), args.Error(1)
}
func (m *mockCarts) Update(ctx context.Context, id string, in domain.CartReplace) (domain.Cart, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Cart), args.Error(1)
}
func (m *mockCarts) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }
func (m *mockCarts) Get(ctx context.Context, id string) (domain.Cart, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Cart), args.Error(1)
}
func (m *mockCarts) List(ctx context.Context) ([]domain.Cart, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Cart), args.Error(1)
}
func (m *mockCarts) Mine(ctx context.Context, uid string) (domain.Cart, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(domain.Cart), args.Error(1)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Create(ctx context.Context, uid string, in domain.OrderInput) (domain.Order, error) {
	args := m.Called(ctx, uid, in)
	return args.Get(0).(domain.Order), args.Error(1)
}
func (m *mockOrders) Update(ctx context.Context, id string, upd domain.OrderUpdate) (domain.Order, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.Order), args.Error(1)
}
func (m *mockOrders) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }
func (m *mockOrders) Get(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}
func (m *mockOrders) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) Create(ctx context.Context, in domain.PaymentInput) (domain.Payment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Payment), args.Error(1)
}
func (m *mockPayments) UpdateStatus(ctx context.Context, id string, in domain.PaymentStatusUpdate) (domain.Payment, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Payment), args.Error(1)
}
func (m *mockPayments) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }
func (m *mockPayments) Get(ctx context.Context, id string) (domain.Payment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Payment), args.Error(1)
}
func (m *mockPayments) List(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) Create(ctx context.Context, uid string, in domain.ReviewInput) (domain.Review, error) {
	args := m.Called(ctx, uid, in)
	return args.Get(0).(domain.Review), args.Error(1)
}
func (m *mockReviews) ListByProduct(ctx context.Context, pid string) ([]domain.Review, error) {
	args := m.Called(ctx, pid)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *mockReviews) Delete(ctx context.Context, id string) error { return m.Called(ctx, id).Error(0) }

type fixture struct {
	handler  http.Handler
	tokens   *token.Service
	users    *mockUsers
	products *mockProducts
	carts    *mockCarts
	orders   *mockOrders
	payments *mockPayments
	reviews  *mockReviews
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	f := &fixture{
		tokens:   token.NewService("test-secret", time.Hour),
		users:    &mockUsers{},
		products: &mockProducts{},
		carts:    &mockCarts{},
		orders:   &mockOrders{},
		payments: &mockPayments{},
		reviews:  &mockReviews{},
	}
	f.handler = NewRouter(Handlers{
		User:    user.NewHandler(f.users, log),
		Product: product.NewHandler(f.products, log),
		Cart:    cart.NewHandler(f.carts, log),
		Order:   order.NewHandler(f.orders, log),
		Payment: payment.NewHandler(f.payments, log),
		Review:  review.NewHandler(f.reviews, log),
	}, Options{
		Tokens:          f.tokens,
		Cache:           cache.NoopClient{},
		RateLimit:       0,
		RateLimitWindow: time.Minute,
		SwaggerHost:     "localhost:8080",
	}, log)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, authed bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		tok, err := f.tokens.GenerateToken(userID, "ana@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestPing(t *testing.T) {
	f := newFixture(t)
	rec, _ := f.do(t, http.MethodGet, "/ping", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestUnknownEndpoint(t *testing.T) {
	f := newFixture(t)
	rec, body := f.do(t, http.MethodGet, "/api/nothing-here", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]interface{}{"message": messages.EndpointNotFound}, body)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	f := newFixture(t)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/cart"},
		{http.MethodGet, "/api/cart/me"},
		{http.MethodPost, "/api/cart/add"},
		{http.MethodGet, "/api/order"},
		{http.MethodPost, "/api/payment"},
		{http.MethodGet, "/api/review/" + productID},
		{http.MethodPost, "/api/product"},
		{http.MethodPut, "/api/user/" + userID},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec, body := f.do(t, rt.method, rt.path, "", false)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, messages.AuthMissingToken, body["message"])
		})
	}
}

func TestPublicProductList(t *testing.T) {
	f := newFixture(t)
	f.products.On("List", mock.Anything, domain.ListQuery{Page: 2, Limit: 5, Search: "lamp", Sort: "price", Order: "desc"}).
		Return(domain.Page[domain.Product]{Items: []domain.Product{{ID: productID, Name: "Lamp"}}, Total: 12, Page: 2, Limit: 5}, nil)

	rec, body := f.do(t, http.MethodGet, "/api/product?page=2&limit=5&search=lamp&sort=price&order=desc", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 12, body["total"])
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 5, body["limit"])
	assert.Len(t, body["products"], 1)
	f.products.AssertExpectations(t)
}

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t)
	reg := domain.UserRegistration{Name: "Ana", Email: "ana@example.com", Password: "Secr3t!pass"}
	f.users.On("Create", mock.Anything, reg).Return(domain.User{ID: userID, Name: "Ana", Email: reg.Email, PasswordHash: "hash"}, nil)
	f.users.On("Login", mock.Anything, domain.Credentials{Email: reg.Email, Password: "nope"}).
		Return("", apperror.NewUnauthorizedError(messages.LoginBadPassword))

	rec, body := f.do(t, http.MethodPost, "/api/user", `{"name":"Ana","email":"ana@example.com","password":"Secr3t!pass"}`, false)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, messages.UserCreated, body["message"])
	created := body["user"].(map[string]interface{})
	assert.Equal(t, userID, created["id"])
	assert.NotContains(t, created, "PasswordHash")

	rec, body = f.do(t, http.MethodPost, "/api/user/login", `{"email":"ana@example.com","password":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, messages.LoginBadPassword, body["message"])
}

func TestMalformedPayload(t *testing.T) {
	f := newFixture(t)
	rec, body := f.do(t, http.MethodPost, "/api/user", `{"name":`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []interface{}{messages.InvalidPayload}, body["errors"])
}

func TestCartAddUsesTokenSubject(t *testing.T) {
	f := newFixture(t)
	in := domain.AddToCart{ProductID: productID, Quantity: 2}
	f.carts.On("AddProduct", mock.Anything, userID, in).
		Return(domain.Cart{ID: cartID, User: domain.UserRef{ID: userID}, Products: []domain.CartItem{{Product: productID, Quantity: 2}}}, nil)

	rec, body := f.do(t, http.MethodPost, "/api/cart/add", `{"productId":"`+productID+`","quantity":2}`, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, messages.CartProductAdded, body["message"])
	assert.Equal(t, cartID, body["cart"].(map[string]interface{})["id"])
	f.carts.AssertExpectations(t)
}

func TestCartMeIsNotAnID(t *testing.T) {
	f := newFixture(t)
	f.carts.On("Mine", mock.Anything, userID).Return(domain.Cart{User: domain.UserRef{ID: userID}, Products: []domain.CartItem{}}, nil)

	rec, body := f.do(t, http.MethodGet, "/api/cart/me", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "cart")
	f.carts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCartValidationErrors(t *testing.T) {
	f := newFixture(t)
	f.carts.On("Update", mock.Anything, cartID, mock.Anything).
		Return(domain.Cart{}, apperror.NewValidationError(messages.ItemQuantity(1, domain.MaxLineQuantity), messages.ItemDuplicate(2)))

	rec, body := f.do(t, http.MethodPut, "/api/cart/"+cartID, `{"products":[{"product":"`+productID+`","quantity":0},{"product":"`+productID+`","quantity":1}]}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []interface{}{messages.ItemQuantity(1, domain.MaxLineQuantity), messages.ItemDuplicate(2)}, body["errors"])
}

func TestOrderCreate(t *testing.T) {
	f := newFixture(t)
	f.orders.On("Create", mock.Anything, userID, mock.AnythingOfType("domain.OrderInput")).
		Return(domain.Order{ID: "o-1", Status: domain.OrderPending}, nil)

	rec, body := f.do(t, http.MethodPost, "/api/order", `{"productId":"`+productID+`","totalAmount":10}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, messages.OrderCreated, body["message"])
	in := f.orders.Calls[0].Arguments.Get(2).(domain.OrderInput)
	assert.Equal(t, productID, in.ProductID)
}

func TestOrderInternalError(t *testing.T) {
	f := newFixture(t)
	f.orders.On("List", mock.Anything).Return([]domain.Order(nil), apperror.NewInternalError(messages.OrderListFailed, assert.AnError))

	rec, body := f.do(t, http.MethodGet, "/api/order", "", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, messages.OrderListFailed, body["message"])
	assert.Equal(t, assert.AnError.Error(), body["error"])
}

func TestPaymentNotFound(t *testing.T) {
	f := newFixture(t)
	f.payments.On("Get", mock.Anything, cartID).Return(domain.Payment{}, apperror.NewNotFoundError(messages.PaymentNotFound))

	rec, body := f.do(t, http.MethodGet, "/api/payment/"+cartID, "", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, messages.PaymentNotFound, body["message"])
}

func TestReviewRoutes(t *testing.T) {
	f := newFixture(t)
	f.reviews.On("Create", mock.Anything, userID, domain.ReviewInput{Product: productID, Rating: 4, Comment: "ok"}).
		Return(domain.Review{ID: "r-1", Product: productID, Rating: 4}, nil)
	f.reviews.On("ListByProduct", mock.Anything, productID).Return([]domain.Review{{ID: "r-1"}}, nil)
	f.reviews.On("Delete", mock.Anything, "r-1").Return(nil)

	// the path product wins over the body
	rec, body := f.do(t, http.MethodPost, "/api/review/"+productID, `{"product":"other","rating":4,"comment":"ok"}`, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, messages.ReviewCreated, body["message"])

	rec, body = f.do(t, http.MethodGet, "/api/review/"+productID, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["reviews"], 1)

	rec, body = f.do(t, http.MethodDelete, "/api/review/r-1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, messages.ReviewDeleted, body["message"])

	f.reviews.AssertExpectations(t)
}

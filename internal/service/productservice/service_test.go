package productservice_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
	"storefront/internal/service/productservice"
)

const productID = "0b6c3c52-3f5e-4f43-9c5e-3f1f2f7a9d10"

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, query domain.ListQuery) ([]domain.Product, int, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, upd domain.ProductUpdate) (domain.Product, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreate_Defaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	price := decimal.RequireFromString("19.90")
	mockRepo.On("Save", mock.Anything, domain.Product{
		Name:        "Desk lamp",
		Description: "LED",
		Price:       price,
		Category:    "home",
		IsActive:    true,
	}).Return(domain.Product{ID: productID, Name: "Desk lamp"}, nil)

	created, err := svc.Create(context.Background(), domain.ProductInput{
		Name: "Desk lamp", Description: "LED", Price: price, Category: "home",
	})

	require.NoError(t, err)
	assert.Equal(t, productID, created.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreate_MissingFieldsPersistsNothing(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	stock := -1
	_, err := svc.Create(context.Background(), domain.ProductInput{Stock: &stock})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		messages.NotEmpty("Product name"),
		messages.NotEmpty("Description"),
		messages.PositiveNumber("Price"),
		messages.NotEmpty("Category"),
		messages.NonNegative("Stock"),
	}, vErr.Msgs)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_OnlyPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	price := decimal.RequireFromString("24.50")
	mockRepo.On("Update", mock.Anything, productID, domain.ProductUpdate{Price: &price}).
		Return(domain.Product{ID: productID, Name: "Desk lamp", Price: price}, nil)

	updated, err := svc.Update(context.Background(), productID, domain.ProductUpdate{Price: &price})

	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, "Desk lamp", updated.Name)
	mockRepo.AssertExpectations(t)
}

func TestUpdate_RejectsNonPositivePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	zero := decimal.Zero
	_, err := svc.Update(context.Background(), productID, domain.ProductUpdate{Price: &zero})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{messages.PositiveNumber("Price")}, vErr.Msgs)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmptyPayloadReturnsCurrent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("FindByID", mock.Anything, productID).Return(domain.Product{ID: productID}, nil)

	_, err := svc.Update(context.Background(), productID, domain.ProductUpdate{})

	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		target  interface{}
	}{
		{"missing product", apperror.NewNotFoundError(messages.ProductNotFound), new(*apperror.NotFoundError)},
		{"referenced by orders", apperror.NewConflictError(messages.ProductInUse), new(*apperror.ConflictError)},
		{"database down", apperror.NewDBError("failed to delete product", errors.New("timeout")), new(*apperror.InternalError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			svc := productservice.NewService(mockRepo, logger.NewNop())
			mockRepo.On("Delete", mock.Anything, productID).Return(tt.repoErr)

			err := svc.Delete(context.Background(), productID)

			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestList_SecondPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	page := make([]domain.Product, 5)
	for i := range page {
		page[i] = domain.Product{Name: fmt.Sprintf("product %02d", i+6)}
	}
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(q domain.ListQuery) bool {
		return q.Page == 2 && q.Limit == 5 && q.Offset() == 5
	})).Return(page, 12, nil)

	got, err := svc.List(context.Background(), domain.ListQuery{Page: 2, Limit: 5})

	require.NoError(t, err)
	assert.Len(t, got.Items, 5)
	assert.Equal(t, 12, got.Total)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, "product 06", got.Items[0].Name)
}

func TestGet_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, logger.NewNop())

	mockRepo.On("FindByID", mock.Anything, productID).Return(domain.Product{}, apperror.NewNotFoundError(messages.ProductNotFound))

	_, err := svc.Get(context.Background(), productID)

	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

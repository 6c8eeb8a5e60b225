package reviewservice_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	apperror "storefront/internal/errors"
	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
	"storefront/internal/service/reviewservice"
)

const (
	authorID = "5f1c1f0e-8a3b-4e0f-9a53-8c9a8a7b1c2d"
	lamp     = "0b6c3c52-3f5e-4f43-9c5e-3f1f2f7a9d10"
	reviewID = "3b5d7f9a-1c2e-4f6a-8b0d-2e4f6a8c0e1b"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Save(ctx context.Context, review domain.Review) (domain.Review, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	missing, _ := args.Get(0).([]string)
	return missing, args.Error(1)
}

func TestCreate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		length int
		want   []string
	}{
		{"zero rating", 0, 10, []string{messages.PositiveNumber("Rating")}},
		{"negative rating", -2, 10, []string{messages.PositiveNumber("Rating")}},
		{"comment of 501 characters", 4, 501, []string{messages.MaxLength("Comment", domain.MaxCommentLength)}},
		{"comment of exactly 500 characters", 4, 500, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(MockReviewRepository)
			products := new(MockProductLookup)
			svc := reviewservice.NewService(reviews, products, logger.NewNop())

			in := domain.ReviewInput{Product: lamp, Rating: tt.rating, Comment: strings.Repeat("a", tt.length)}
			if tt.want == nil {
				products.On("MissingIDs", mock.Anything, []string{lamp}).Return(nil, nil)
				reviews.On("Save", mock.Anything, domain.Review{
					Product: lamp,
					User:    domain.UserRef{ID: authorID},
					Rating:  tt.rating,
					Comment: in.Comment,
				}).Return(domain.Review{ID: reviewID}, nil)
			}

			review, err := svc.Create(context.Background(), authorID, in)

			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, reviewID, review.ID)
				reviews.AssertExpectations(t)
				return
			}
			var vErr *apperror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.want, vErr.Msgs)
			reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_UnknownProduct(t *testing.T) {
	reviews := new(MockReviewRepository)
	products := new(MockProductLookup)
	svc := reviewservice.NewService(reviews, products, logger.NewNop())
	products.On("MissingIDs", mock.Anything, []string{lamp}).Return([]string{lamp}, nil)

	_, err := svc.Create(context.Background(), authorID, domain.ReviewInput{Product: lamp, Rating: 5})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{messages.ProductNotFound}, vErr.Msgs)
}

func TestListByProduct(t *testing.T) {
	reviews := new(MockReviewRepository)
	svc := reviewservice.NewService(reviews, new(MockProductLookup), logger.NewNop())
	reviews.On("FindByProduct", mock.Anything, lamp).Return([]domain.Review{
		{ID: reviewID, User: domain.UserRef{ID: authorID, Name: "Ana", Email: "ana@example.com"}},
	}, nil)

	got, err := svc.ListByProduct(context.Background(), lamp)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].User.Name)
}

func TestDelete_MissingReviewIs404(t *testing.T) {
	reviews := new(MockReviewRepository)
	svc := reviewservice.NewService(reviews, new(MockProductLookup), logger.NewNop())
	reviews.On("Delete", mock.Anything, reviewID).Return(apperror.NewNotFoundError(messages.ReviewNotFound))

	err := svc.Delete(context.Background(), reviewID)

	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

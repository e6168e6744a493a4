package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
)

// MockCategoryRepo implements CategoryRepositoryInterface for testing
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCategoryRepo) CreateBatch(ctx context.Context, categories []model.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepo) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestCategoryService_EnsureDefaultCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(*MockCategoryRepo, uuid.UUID)
		wantErr   bool
	}{
		{
			name: "seeds full default set for fresh user",
			setupMock: func(m *MockCategoryRepo, userID uuid.UUID) {
				m.On("CountForUser", mock.Anything, userID).Return(0, nil)
				m.On("CreateBatch", mock.Anything, mock.MatchedBy(func(cats []model.Category) bool {
					if len(cats) != len(model.DefaultCategories) {
						return false
					}
					for _, c := range cats {
						if c.UserID != userID || !c.IsDefault {
							return false
						}
					}
					return true
				})).Return(nil)
			},
		},
		{
			name: "no-op when user already has categories",
			setupMock: func(m *MockCategoryRepo, userID uuid.UUID) {
				m.On("CountForUser", mock.Anything, userID).Return(7, nil)
			},
		},
		{
			name: "batch insert failure",
			setupMock: func(m *MockCategoryRepo, userID uuid.UUID) {
				m.On("CountForUser", mock.Anything, userID).Return(0, nil)
				m.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockCategoryRepo)
			service := NewCategoryService(mockRepo)
			userID := uuid.New()
			tt.setupMock(mockRepo, userID)

			err := service.EnsureDefaultCategories(context.Background(), userID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     CategoryInput
		setupMock func(*MockCategoryRepo)
		wantErr   error
		check     func(*testing.T, *model.Category)
	}{
		{
			name:  "success",
			input: CategoryInput{Name: "Groceries", Type: model.TransactionTypeExpense, Icon: "fa-cart", Color: "#22C55E"},
			setupMock: func(m *MockCategoryRepo) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			check: func(t *testing.T, c *model.Category) {
				assert.Equal(t, "Groceries", c.Name)
				assert.Equal(t, "#22C55E", c.Color)
			},
		},
		{
			name:  "defaults icon and color",
			input: CategoryInput{Name: "Misc", Type: model.TransactionTypeExpense},
			setupMock: func(m *MockCategoryRepo) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
					return c.Icon == "fa-tag" && c.Color == "#3B82F6"
				})).Return(nil)
			},
			check: func(t *testing.T, c *model.Category) {
				assert.Equal(t, "fa-tag", c.Icon)
			},
		},
		{
			name:      "invalid type",
			input:     CategoryInput{Name: "Bad", Type: "transfer"},
			setupMock: func(m *MockCategoryRepo) {},
			wantErr:   ErrInvalidCategoryType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockCategoryRepo)
			service := NewCategoryService(mockRepo)
			tt.setupMock(mockRepo)

			category, err := service.Create(context.Background(), uuid.New(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, category)
				if tt.check != nil {
					tt.check(t, category)
				}
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(*MockCategoryRepo, uuid.UUID, uuid.UUID)
		wantErr   bool
	}{
		{
			name: "success",
			setupMock: func(m *MockCategoryRepo, id, userID uuid.UUID) {
				m.On("GetByID", mock.Anything, id).Return(&model.Category{
					ID: id, UserID: userID, Name: "Old", Type: model.TransactionTypeExpense,
				}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
					return c.Name == "Renamed"
				})).Return(nil)
			},
		},
		{
			name: "not owner",
			setupMock: func(m *MockCategoryRepo, id, userID uuid.UUID) {
				m.On("GetByID", mock.Anything, id).Return(&model.Category{ID: id, UserID: uuid.New()}, nil)
			},
			wantErr: true,
		},
		{
			name: "not found",
			setupMock: func(m *MockCategoryRepo, id, userID uuid.UUID) {
				m.On("GetByID", mock.Anything, id).Return(nil, repository.ErrCategoryNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockCategoryRepo)
			service := NewCategoryService(mockRepo)
			id := uuid.New()
			userID := uuid.New()
			tt.setupMock(mockRepo, id, userID)

			category, err := service.Update(context.Background(), userID, id, CategoryInput{Name: "Renamed"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, category)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	t.Parallel()

	mockRepo := new(MockCategoryRepo)
	service := NewCategoryService(mockRepo)
	id := uuid.New()
	userID := uuid.New()

	mockRepo.On("Delete", mock.Anything, id, userID).Return(nil)

	assert.NoError(t, service.Delete(context.Background(), userID, id))
	mockRepo.AssertExpectations(t)
}

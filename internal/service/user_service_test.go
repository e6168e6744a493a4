package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
)

// MockUserRepo implements UserRepositoryInterface for testing
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockCategorySeeder implements CategorySeeder for testing
type MockCategorySeeder struct {
	mock.Mock
}

func (m *MockCategorySeeder) EnsureDefaultCategories(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     RegisterInput
		setupMock func(*MockUserRepo, *MockCategorySeeder)
		wantErr   error
	}{
		{
			name:  "success seeds default categories",
			input: RegisterInput{Email: "new@example.com", Password: "secret123", Name: "New User"},
			setupMock: func(repo *MockUserRepo, seeder *MockCategorySeeder) {
				repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				seeder.On("EnsureDefaultCategories", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
			},
		},
		{
			name:  "email already taken",
			input: RegisterInput{Email: "taken@example.com", Password: "secret123"},
			setupMock: func(repo *MockUserRepo, seeder *MockCategorySeeder) {
				repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:  "seeder failure surfaces",
			input: RegisterInput{Email: "new@example.com", Password: "secret123"},
			setupMock: func(repo *MockUserRepo, seeder *MockCategorySeeder) {
				repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				seeder.On("EnsureDefaultCategories", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockUserRepo)
			mockSeeder := new(MockCategorySeeder)
			service := NewUserService(mockRepo, mockSeeder)
			tt.setupMock(mockRepo, mockSeeder)

			resp, err := service.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, resp)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, tt.input.Email, resp.User.Email)
				assert.NotEqual(t, tt.input.Password, resp.User.PasswordHash)
			}
			mockRepo.AssertExpectations(t)
			mockSeeder.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		input     LoginInput
		setupMock func(*MockUserRepo)
		wantErr   error
	}{
		{
			name:  "success",
			input: LoginInput{Email: "user@example.com", Password: "correct-password"},
			setupMock: func(repo *MockUserRepo) {
				repo.On("GetByEmail", mock.Anything, "user@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "user@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
		},
		{
			name:  "wrong password",
			input: LoginInput{Email: "user@example.com", Password: "wrong"},
			setupMock: func(repo *MockUserRepo) {
				repo.On("GetByEmail", mock.Anything, "user@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "user@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "unknown email",
			input: LoginInput{Email: "nobody@example.com", Password: "whatever"},
			setupMock: func(repo *MockUserRepo) {
				repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockUserRepo)
			service := NewUserService(mockRepo, nil)
			tt.setupMock(mockRepo)

			resp, err := service.Login(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, resp)
				assert.NotEmpty(t, resp.Token)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateSettings(t *testing.T) {
	t.Parallel()

	mockRepo := new(MockUserRepo)
	service := NewUserService(mockRepo, nil)
	userID := uuid.New()

	mockRepo.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Old"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "New"
	})).Return(nil)

	name := "New"
	user, err := service.UpdateSettings(context.Background(), userID, UpdateSettingsInput{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "New", user.Name)
	mockRepo.AssertExpectations(t)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := generateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsed)

	_, err = ValidateToken("not-a-token")
	assert.Error(t, err)
}

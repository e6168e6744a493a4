package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/internal/service"
)

// MockSavingsGoalService implements a mock savings goal service for handler tests
type MockSavingsGoalService struct {
	mock.Mock
}

func (m *MockSavingsGoalService) Create(ctx context.Context, userID uuid.UUID, input service.CreateSavingsGoalInput) (*model.SavingsGoal, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalService) Get(ctx context.Context, id, userID uuid.UUID) (*model.SavingsGoal, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalService) ListWithProjections(ctx context.Context, userID uuid.UUID) ([]service.SavingsGoalWithProjection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SavingsGoalWithProjection), args.Error(1)
}

func (m *MockSavingsGoalService) Project(ctx context.Context, id, userID uuid.UUID) (*model.GoalProjection, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoalProjection), args.Error(1)
}

func (m *MockSavingsGoalService) Simulate(input service.SimulateGoalInput) (*model.GoalProjection, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoalProjection), args.Error(1)
}

func (m *MockSavingsGoalService) Update(ctx context.Context, id, userID uuid.UUID, input service.UpdateSavingsGoalInput) (*model.SavingsGoal, error) {
	args := m.Called(ctx, id, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockSavingsGoalService) Contribute(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) (*model.SavingsGoal, error) {
	args := m.Called(ctx, id, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavingsGoal), args.Error(1)
}

func TestSavingsGoalHandler_Create_Success(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	goal := &model.SavingsGoal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(10000),
		TargetDate:   time.Now().AddDate(1, 0, 0),
	}

	mockService.On("Create", mock.Anything, userID, mock.MatchedBy(func(input service.CreateSavingsGoalInput) bool {
		return input.Name == "Emergency Fund" && input.TargetDate.String() == "2027-06-01"
	})).Return(goal, nil)

	body := []byte(`{"name":"Emergency Fund","targetAmount":"10000","targetDate":"2027-06-01"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals", bytes.NewReader(body))
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Emergency Fund")
	mockService.AssertExpectations(t)
}

func TestSavingsGoalHandler_Create_PastDate(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	mockService.On("Create", mock.Anything, userID, mock.Anything).
		Return(nil, service.ErrInvalidGoalDate)

	body := []byte(`{"name":"Vacation","targetAmount":"5000","targetDate":"2020-01-01T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals", bytes.NewReader(body))
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "target date must be in the future")
}

func TestSavingsGoalHandler_Create_MissingName(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	mockService.On("Create", mock.Anything, userID, mock.Anything).
		Return(nil, service.ErrGoalNameRequired)

	body := []byte(`{"targetAmount":"5000","targetDate":"2027-01-01T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals", bytes.NewReader(body))
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "name is required")
}

func TestSavingsGoalHandler_List_Success(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	goals := []service.SavingsGoalWithProjection{
		{
			SavingsGoalWithProgress: model.SavingsGoalWithProgress{
				SavingsGoal: model.SavingsGoal{
					ID:     uuid.New(),
					UserID: userID,
					Name:   "New Car",
				},
				ProgressPercentage: 40,
			},
			Projection: &model.GoalProjection{
				RemainingAmount: decimal.NewFromInt(15000),
			},
		},
	}

	mockService.On("ListWithProjections", mock.Anything, userID).Return(goals, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/savings-goals", nil)
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "projection")
	mockService.AssertExpectations(t)
}

func TestSavingsGoalHandler_Project_NotFound(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	goalID := uuid.New()
	mockService.On("Project", mock.Anything, goalID, userID).
		Return(nil, repository.ErrSavingsGoalNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/savings-goals/"+goalID.String()+"/projection", nil)
	req = withUser(req, userID)
	req = withURLParam(req, "id", goalID.String())

	rr := httptest.NewRecorder()
	handler.Project(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSavingsGoalHandler_Simulate_Success(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	projection := &model.GoalProjection{
		RemainingAmount:  decimal.NewFromInt(12000),
		FeasibilityScore: 75,
	}
	mockService.On("Simulate", mock.Anything).Return(projection, nil)

	body := []byte(`{"targetAmount":"12000","currentAmount":"0","targetDate":"2027-01-01T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals/simulate", bytes.NewReader(body))
	req = withUser(req, uuid.New())

	rr := httptest.NewRecorder()
	handler.Simulate(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "feasibilityScore")
	mockService.AssertExpectations(t)
}

func TestSavingsGoalHandler_Simulate_PastDate(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	mockService.On("Simulate", mock.Anything).Return(nil, service.ErrInvalidGoalDate)

	body := []byte(`{"targetAmount":"12000","targetDate":"2020-01-01T00:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals/simulate", bytes.NewReader(body))
	req = withUser(req, uuid.New())

	rr := httptest.NewRecorder()
	handler.Simulate(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSavingsGoalHandler_Contribute_Success(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	goalID := uuid.New()
	updated := &model.SavingsGoal{
		ID:            goalID,
		UserID:        userID,
		Name:          "Emergency Fund",
		CurrentAmount: decimal.NewFromInt(2500),
	}

	mockService.On("Contribute", mock.Anything, goalID, userID, decimal.NewFromInt(500)).
		Return(updated, nil)

	body := []byte(`{"amount":"500"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals/"+goalID.String()+"/contribute", bytes.NewReader(body))
	req = withUser(req, userID)
	req = withURLParam(req, "id", goalID.String())

	rr := httptest.NewRecorder()
	handler.Contribute(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestSavingsGoalHandler_Contribute_InvalidAmount(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	goalID := uuid.New()
	mockService.On("Contribute", mock.Anything, goalID, userID, mock.Anything).
		Return(nil, service.ErrInvalidAmount)

	body := []byte(`{"amount":"-10"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/savings-goals/"+goalID.String()+"/contribute", bytes.NewReader(body))
	req = withUser(req, userID)
	req = withURLParam(req, "id", goalID.String())

	rr := httptest.NewRecorder()
	handler.Contribute(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSavingsGoalHandler_Delete_NotFound(t *testing.T) {
	mockService := new(MockSavingsGoalService)
	handler := NewSavingsGoalHandler(mockService)

	userID := uuid.New()
	goalID := uuid.New()
	mockService.On("Delete", mock.Anything, goalID, userID).
		Return(repository.ErrSavingsGoalNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/savings-goals/"+goalID.String(), nil)
	req = withUser(req, userID)
	req = withURLParam(req, "id", goalID.String())

	rr := httptest.NewRecorder()
	handler.Delete(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/moneywise/backend/internal/model"
)

// MockInsightService implements a mock insight service for handler tests
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) GetInsights(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AIInsight), args.Error(1)
}

func (m *MockInsightService) Refresh(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockInsightService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestInsightHandler_GetInsights_Success(t *testing.T) {
	mockService := new(MockInsightService)
	handler := NewInsightHandler(mockService)

	userID := uuid.New()
	insights := []model.AIInsight{
		{ID: uuid.New(), UserID: userID, Type: "spending", Title: "High dining spend"},
		{ID: uuid.New(), UserID: userID, Type: "saving", Title: "On track for goal"},
	}

	mockService.On("GetInsights", mock.Anything, userID).Return(insights, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.GetInsights(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "High dining spend")
	mockService.AssertExpectations(t)
}

func TestInsightHandler_GetInsights_Error(t *testing.T) {
	mockService := new(MockInsightService)
	handler := NewInsightHandler(mockService)

	userID := uuid.New()
	mockService.On("GetInsights", mock.Anything, userID).
		Return(nil, errors.New("generator down"))

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.GetInsights(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestInsightHandler_Refresh_Success(t *testing.T) {
	mockService := new(MockInsightService)
	handler := NewInsightHandler(mockService)

	userID := uuid.New()
	mockService.On("Refresh", mock.Anything, userID).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/insights/refresh", nil)
	req = withUser(req, userID)

	rr := httptest.NewRecorder()
	handler.Refresh(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}

func TestInsightHandler_MarkRead_Success(t *testing.T) {
	mockService := new(MockInsightService)
	handler := NewInsightHandler(mockService)

	userID := uuid.New()
	insightID := uuid.New()
	mockService.On("MarkRead", mock.Anything, insightID, userID).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/insights/"+insightID.String()+"/read", nil)
	req = withUser(req, userID)
	req = withURLParam(req, "id", insightID.String())

	rr := httptest.NewRecorder()
	handler.MarkRead(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}

func TestInsightHandler_MarkRead_InvalidID(t *testing.T) {
	mockService := new(MockInsightService)
	handler := NewInsightHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/insights/not-a-uuid/read", nil)
	req = withUser(req, uuid.New())
	req = withURLParam(req, "id", "not-a-uuid")

	rr := httptest.NewRecorder()
	handler.MarkRead(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "MarkRead")
}

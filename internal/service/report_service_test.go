package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/pkg/datetime"
)

// MockReportRepo implements ReportRepositoryInterface for testing
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *model.Report) error {
	args := m.Called(ctx, report)
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*model.Report, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Report, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func mustDate(s string) datetime.Date {
	d, err := datetime.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReportService_Generate(t *testing.T) {
	t.Parallel()

	reportRepo := new(MockReportRepo)
	txRepo := new(MockTransactionRepo)
	budgets := new(MockBudgetUsageService)
	savingsRepo := new(MockSavingsGoalRepo)
	service := NewReportService(reportRepo, txRepo, budgets, savingsRepo)
	service.now = func() time.Time { return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC) }
	userID := uuid.New()

	transactions := []model.TransactionWithCategory{
		makeTx(model.TransactionTypeIncome, 100000, "2025-05-05", "Salary", "#10B981"),
		makeTx(model.TransactionTypeExpense, 30000, "2025-05-12", "Food", "#EF4444"),
		makeTx(model.TransactionTypeExpense, 10000, "2025-06-03", "Shopping", "#3B82F6"),
	}
	goal := model.SavingsGoal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          "Emergency Fund",
		TargetAmount:  decimal.NewFromInt(50000),
		CurrentAmount: decimal.NewFromInt(10000),
		TargetDate:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	txRepo.On("ListForPeriod", mock.Anything, userID, mock.Anything, mock.Anything).Return(transactions, nil)
	budgets.On("ListWithUsage", mock.Anything, userID).Return([]model.BudgetWithUsage{
		{CategoryName: "Food", UsagePercentage: 92, IsOverBudget: true},
		{CategoryName: "Shopping", UsagePercentage: 40},
	}, nil)
	savingsRepo.On("List", mock.Anything, userID).Return([]model.SavingsGoal{goal}, nil)
	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Report")).Return(nil)

	report, err := service.Generate(context.Background(), userID, GenerateReportInput{
		StartDate: mustDate("2025-05-01"),
		EndDate:   mustDate("2025-06-30"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, report)
	assert.Equal(t, userID, report.UserID)
	assert.Contains(t, report.Title, "2025-05-01")
	assert.Equal(t, model.ReportTypeMonthly, report.Type)
	assert.Equal(t, model.ReportStatusCompleted, report.Status)

	var data model.ReportData
	assert.NoError(t, json.Unmarshal(report.Metadata, &data))

	assert.True(t, data.Summary.TotalIncome.Equal(decimal.NewFromInt(100000)))
	assert.True(t, data.Summary.TotalExpense.Equal(decimal.NewFromInt(40000)))
	assert.Len(t, data.MonthlyBreakdown, 2)
	assert.Equal(t, "2025-05", data.MonthlyBreakdown[0].Period)
	assert.Equal(t, "Food", data.CategoryBreakdown[0].Category)
	assert.Len(t, data.SavingsAnalysis, 1)

	assert.True(t, data.Insights.TotalBalance.Equal(decimal.NewFromInt(60000)))
	assert.InDelta(t, 60.0, data.Insights.SavingsRate, 0.001)
	assert.Equal(t, "Food", data.Insights.TopExpenseCategory)
	assert.Equal(t, 1, data.Insights.BudgetAlerts)
	// 20% progress with 2 months left needs >= 83.3% to be on track
	assert.Equal(t, 1, data.Insights.SavingsGoalsBehind)

	assert.Equal(t, "2025-05-01", data.Metadata.PeriodStart)
	assert.Equal(t, "2025-06-30", data.Metadata.PeriodEnd)
	assert.Equal(t, model.ReportTypeMonthly, data.Metadata.Type)
	assert.Equal(t, time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC), data.Metadata.GeneratedAt)
	assert.Equal(t, 3, data.Metadata.TransactionCount)

	reportRepo.AssertExpectations(t)
	txRepo.AssertExpectations(t)
	budgets.AssertExpectations(t)
	savingsRepo.AssertExpectations(t)
}

func TestReportService_Generate_InvalidRange(t *testing.T) {
	t.Parallel()

	service := NewReportService(new(MockReportRepo), new(MockTransactionRepo), new(MockBudgetUsageService), new(MockSavingsGoalRepo))

	report, err := service.Generate(context.Background(), uuid.New(), GenerateReportInput{
		StartDate: mustDate("2025-06-30"),
		EndDate:   mustDate("2025-06-01"),
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, report)
}

func TestReportService_Generate_InvalidType(t *testing.T) {
	t.Parallel()

	service := NewReportService(new(MockReportRepo), new(MockTransactionRepo), new(MockBudgetUsageService), new(MockSavingsGoalRepo))

	report, err := service.Generate(context.Background(), uuid.New(), GenerateReportInput{
		Type:      "weekly",
		StartDate: mustDate("2025-06-01"),
		EndDate:   mustDate("2025-06-30"),
	})

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestReportService_Generate_RepositoryError(t *testing.T) {
	t.Parallel()

	reportRepo := new(MockReportRepo)
	txRepo := new(MockTransactionRepo)
	service := NewReportService(reportRepo, txRepo, new(MockBudgetUsageService), new(MockSavingsGoalRepo))
	userID := uuid.New()

	txRepo.On("ListForPeriod", mock.Anything, userID, mock.Anything, mock.Anything).Return(nil, errors.New("db error"))

	report, err := service.Generate(context.Background(), userID, GenerateReportInput{
		StartDate: mustDate("2025-06-01"),
		EndDate:   mustDate("2025-06-30"),
	})

	assert.Error(t, err)
	assert.Nil(t, report)
	txRepo.AssertExpectations(t)
}

func TestReportService_GetListDelete(t *testing.T) {
	t.Parallel()

	reportRepo := new(MockReportRepo)
	service := NewReportService(reportRepo, new(MockTransactionRepo), new(MockBudgetUsageService), new(MockSavingsGoalRepo))
	userID := uuid.New()
	reportID := uuid.New()

	stored := &model.Report{ID: reportID, UserID: userID, Title: "May Report", Metadata: json.RawMessage(`{}`)}

	reportRepo.On("GetByID", mock.Anything, reportID, userID).Return(stored, nil)
	reportRepo.On("List", mock.Anything, userID).Return([]model.Report{*stored}, nil)
	reportRepo.On("Delete", mock.Anything, reportID, userID).Return(nil)

	report, err := service.Get(context.Background(), reportID, userID)
	assert.NoError(t, err)
	assert.Equal(t, "May Report", report.Title)

	reports, err := service.List(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, reports, 1)

	assert.NoError(t, service.Delete(context.Background(), reportID, userID))
	reportRepo.AssertExpectations(t)
}

func TestReportService_Get_NotFound(t *testing.T) {
	t.Parallel()

	reportRepo := new(MockReportRepo)
	service := NewReportService(reportRepo, new(MockTransactionRepo), new(MockBudgetUsageService), new(MockSavingsGoalRepo))
	userID := uuid.New()
	reportID := uuid.New()

	reportRepo.On("GetByID", mock.Anything, reportID, userID).Return(nil, repository.ErrReportNotFound)

	report, err := service.Get(context.Background(), reportID, userID)
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
	assert.Nil(t, report)
}

func TestReportService_Data(t *testing.T) {
	t.Parallel()

	service := NewReportService(new(MockReportRepo), new(MockTransactionRepo), new(MockBudgetUsageService), new(MockSavingsGoalRepo))

	payload := model.ReportData{Insights: model.FinancialInsights{TopExpenseCategory: "Food"}}
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)

	data, err := service.Data(&model.Report{Metadata: raw})
	assert.NoError(t, err)
	assert.Equal(t, "Food", data.Insights.TopExpenseCategory)

	_, err = service.Data(&model.Report{Metadata: json.RawMessage("not json")})
	assert.Error(t, err)
}

package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/service"
)

// BudgetServiceInterface for handler testing
type BudgetServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, input service.CreateBudgetInput) (*model.Budget, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Budget, error)
	ListWithUsage(ctx context.Context, userID uuid.UUID) ([]model.BudgetWithUsage, error)
	Update(ctx context.Context, id, userID uuid.UUID, input service.UpdateBudgetInput) (*model.Budget, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// SavingsGoalServiceInterface for handler testing
type SavingsGoalServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, input service.CreateSavingsGoalInput) (*model.SavingsGoal, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.SavingsGoal, error)
	ListWithProjections(ctx context.Context, userID uuid.UUID) ([]service.SavingsGoalWithProjection, error)
	Project(ctx context.Context, id, userID uuid.UUID) (*model.GoalProjection, error)
	Simulate(input service.SimulateGoalInput) (*model.GoalProjection, error)
	Update(ctx context.Context, id, userID uuid.UUID, input service.UpdateSavingsGoalInput) (*model.SavingsGoal, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Contribute(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) (*model.SavingsGoal, error)
}

// CategoryServiceInterface for handler testing
type CategoryServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, input service.CategoryInput) (*model.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	Update(ctx context.Context, userID, id uuid.UUID, input service.CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ReportServiceInterface for handler testing
type ReportServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, input service.GenerateReportInput) (*model.Report, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Report, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Report, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Data(report *model.Report) (*model.ReportData, error)
}

// InsightServiceInterface for handler testing
type InsightServiceInterface interface {
	GetInsights(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error)
	Refresh(ctx context.Context, userID uuid.UUID) error
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

// Note: TransactionServiceInterface and AuthServiceInterface are defined next to their handlers.

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moneywise/backend/internal/model"
	"github.com/shopspring/decimal"
)

//go:generate mockery --name=UserRepositoryInterface --output=../mocks --outpkg=mocks
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *model.User) error
}

//go:generate mockery --name=CategoryRepositoryInterface --output=../mocks --outpkg=mocks
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *model.Category) error
	CreateBatch(ctx context.Context, categories []model.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

//go:generate mockery --name=TransactionRepositoryInterface --output=../mocks --outpkg=mocks
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TransactionWithCategory, error)
	List(ctx context.Context, userID uuid.UUID, filters TransactionFilters) ([]model.TransactionWithCategory, error)
	ListForPeriod(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]model.TransactionWithCategory, error)
	Update(ctx context.Context, tx *model.Transaction) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	GetSpentByCategory(ctx context.Context, userID, categoryID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error)
	GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.TransactionWithCategory, error)
}

//go:generate mockery --name=BudgetRepositoryInterface --output=../mocks --outpkg=mocks
type BudgetRepositoryInterface interface {
	Create(ctx context.Context, budget *model.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.BudgetWithUsage, error)
	Update(ctx context.Context, budget *model.Budget) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

//go:generate mockery --name=SavingsGoalRepositoryInterface --output=../mocks --outpkg=mocks
type SavingsGoalRepositoryInterface interface {
	Create(ctx context.Context, goal *model.SavingsGoal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SavingsGoal, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.SavingsGoal, error)
	Update(ctx context.Context, goal *model.SavingsGoal) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	AddContribution(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) (*model.SavingsGoal, error)
	GetTotalSavings(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

//go:generate mockery --name=InsightRepositoryInterface --output=../mocks --outpkg=mocks
type InsightRepositoryInterface interface {
	Create(ctx context.Context, insight *model.AIInsight) error
	List(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error)
	LatestCreatedAt(ctx context.Context, userID uuid.UUID) (time.Time, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error)
}

//go:generate mockery --name=ReportRepositoryInterface --output=../mocks --outpkg=mocks
type ReportRepositoryInterface interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Report, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Report, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/pkg/datetime"
)

const (
	trendMonths         = 6
	trendWeeks          = 8
	topCategoryCount    = 5
	recentTransactionsN = 5
)

// DashboardTransactionRepo provides transaction data needed for dashboard aggregations.
type DashboardTransactionRepo interface {
	ListForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.TransactionWithCategory, error)
	GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.TransactionWithCategory, error)
}

// DashboardBudgetService provides budget usage for the dashboard.
type DashboardBudgetService interface {
	ListWithUsage(ctx context.Context, userID uuid.UUID) ([]model.BudgetWithUsage, error)
}

// DashboardSavingsService provides savings goal progress for the dashboard.
type DashboardSavingsService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.SavingsGoalWithProgress, error)
}

// DashboardService aggregates financial data from multiple sources for dashboard display.
type DashboardService struct {
	transactionRepo DashboardTransactionRepo
	budgets         DashboardBudgetService
	savings         DashboardSavingsService
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService with the required dependencies.
func NewDashboardService(
	transactionRepo DashboardTransactionRepo,
	budgets DashboardBudgetService,
	savings DashboardSavingsService,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		budgets:         budgets,
		savings:         savings,
		now:             time.Now,
	}
}

// GetDashboard assembles the dashboard for the current calendar month:
// a month-to-date summary, six months of monthly trend, eight weeks of
// weekly trend, the top expense categories, budget usage, savings goal
// progress and the most recent transactions.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardData, error) {
	now := s.now()
	monthStart := datetime.StartOfMonth(now)
	today := datetime.EndOfDay(now)

	// One fetch covers the trend window, the current month summary and
	// the category breakdown.
	trendStart := datetime.StartOfMonth(monthStart.AddDate(0, -(trendMonths - 1), 0))
	transactions, err := s.transactionRepo.ListForPeriod(ctx, userID, trendStart, today)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for dashboard: %w", err)
	}

	summary := Summarize(currentMonthOnly(transactions, monthStart), monthStart, now)

	weekStart := datetime.StartOfWeek(now).AddDate(0, 0, -7*(trendWeeks-1))
	var recent []model.TransactionWithCategory
	for _, tx := range transactions {
		if !tx.Date.Before(weekStart) {
			recent = append(recent, tx)
		}
	}

	budgetUsage, err := s.budgets.ListWithUsage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting budget usage: %w", err)
	}

	goals, err := s.savings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting savings goals: %w", err)
	}

	recentTransactions, err := s.transactionRepo.GetRecentTransactions(ctx, userID, recentTransactionsN)
	if err != nil {
		return nil, fmt.Errorf("getting recent transactions: %w", err)
	}
	if recentTransactions == nil {
		recentTransactions = []model.TransactionWithCategory{}
	}

	return &model.DashboardData{
		Summary:            summary,
		MonthlyTrend:       BucketTransactions(transactions, BucketByMonth),
		WeeklyTrend:        BucketTransactions(recent, BucketByWeek),
		TopCategories:      BucketByCategory(currentMonthOnly(transactions, monthStart), topCategoryCount),
		BudgetUsage:        budgetUsage,
		SavingsGoals:       goals,
		RecentTransactions: recentTransactions,
	}, nil
}

func currentMonthOnly(transactions []model.TransactionWithCategory, monthStart time.Time) []model.TransactionWithCategory {
	var result []model.TransactionWithCategory
	for _, tx := range transactions {
		if !tx.Date.Before(monthStart) {
			result = append(result, tx)
		}
	}
	return result
}

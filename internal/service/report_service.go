package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/pkg/datetime"
)

// ReportRepositoryInterface defines the contract for report persistence.
type ReportRepositoryInterface interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*model.Report, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Report, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// ReportSavingsRepo provides the goal data needed for the savings
// analysis section of a report.
type ReportSavingsRepo interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.SavingsGoal, error)
}

// ReportService assembles financial reports from transactions, budgets
// and savings goals, and persists them for later retrieval.
type ReportService struct {
	repo            ReportRepositoryInterface
	transactionRepo TransactionRepositoryInterface
	budgets         DashboardBudgetService
	savingsRepo     ReportSavingsRepo
	now             func() time.Time
}

// NewReportService creates a new ReportService with the given dependencies.
func NewReportService(
	repo ReportRepositoryInterface,
	transactionRepo TransactionRepositoryInterface,
	budgets DashboardBudgetService,
	savingsRepo ReportSavingsRepo,
) *ReportService {
	return &ReportService{
		repo:            repo,
		transactionRepo: transactionRepo,
		budgets:         budgets,
		savingsRepo:     savingsRepo,
		now:             time.Now,
	}
}

type GenerateReportInput struct {
	Title     string           `json:"title"`
	Type      model.ReportType `json:"type"`
	StartDate datetime.Date    `json:"startDate"`
	EndDate   datetime.Date    `json:"endDate"`
}

// Generate assembles a report over an inclusive date range and persists
// it. The assembled payload is stored as the report's metadata so that
// retrieval does not recompute it.
func (s *ReportService) Generate(ctx context.Context, userID uuid.UUID, input GenerateReportInput) (*model.Report, error) {
	start := input.StartDate.Time
	end := input.EndDate.Time
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	reportType := input.Type
	if reportType == "" {
		reportType = model.ReportTypeMonthly
	}
	if !reportType.Valid() {
		return nil, fmt.Errorf("invalid report type: %s", reportType)
	}

	transactions, err := s.transactionRepo.ListForPeriod(ctx, userID, datetime.StartOfDay(start), datetime.EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("listing transactions for report: %w", err)
	}

	budgetUsage, err := s.budgets.ListWithUsage(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting budget usage for report: %w", err)
	}

	goals, err := s.savingsRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing savings goals for report: %w", err)
	}

	now := s.now()
	summary := Summarize(transactions, start, end)
	categoryBreakdown := BucketByCategory(transactions, 0)

	savingsAnalysis := make([]model.GoalSavingsAnalysis, len(goals))
	for i, goal := range goals {
		savingsAnalysis[i] = AnalyzeGoalPacing(goal, now)
	}

	data := model.ReportData{
		Summary:           summary,
		MonthlyBreakdown:  BucketTransactions(transactions, BucketByMonth),
		CategoryBreakdown: categoryBreakdown,
		BudgetUsage:       budgetUsage,
		SavingsAnalysis:   savingsAnalysis,
		Insights:          buildInsights(summary, categoryBreakdown, budgetUsage, savingsAnalysis),
		Metadata: model.ReportMetadata{
			PeriodStart:      start.Format(datetime.DateFormat),
			PeriodEnd:        end.Format(datetime.DateFormat),
			Type:             reportType,
			GeneratedAt:      now,
			TransactionCount: len(transactions),
		},
	}

	metadata, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding report payload: %w", err)
	}

	title := input.Title
	if title == "" {
		title = fmt.Sprintf("Financial Report %s to %s", start.Format(datetime.DateFormat), end.Format(datetime.DateFormat))
	}

	report := &model.Report{
		UserID:      userID,
		Title:       title,
		Type:        reportType,
		Status:      model.ReportStatusCompleted,
		PeriodStart: datetime.StartOfDay(start),
		PeriodEnd:   datetime.StartOfDay(end),
		Metadata:    metadata,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("persisting report: %w", err)
	}

	return report, nil
}

// buildInsights derives the headline figures of a report from its
// already-computed sections.
func buildInsights(
	summary model.Summary,
	categories []model.CategoryBucket,
	budgets []model.BudgetWithUsage,
	analysis []model.GoalSavingsAnalysis,
) model.FinancialInsights {
	insights := model.FinancialInsights{
		TotalBalance: summary.NetBalance,
		SavingsRate:  SavingsRate(summary.TotalIncome, summary.NetBalance),
	}

	if len(categories) > 0 {
		insights.TopExpenseCategory = categories[0].Category
	}
	for _, b := range budgets {
		if b.IsOverBudget {
			insights.BudgetAlerts++
		}
	}
	for _, a := range analysis {
		if !a.IsOnTrack {
			insights.SavingsGoalsBehind++
		}
	}
	return insights
}

// Get retrieves a persisted report by ID for the given user.
func (s *ReportService) Get(ctx context.Context, id, userID uuid.UUID) (*model.Report, error) {
	report, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("getting report %s: %w", id, err)
	}
	return report, nil
}

// List retrieves all persisted reports for a user, newest first.
func (s *ReportService) List(ctx context.Context, userID uuid.UUID) ([]model.Report, error) {
	reports, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing reports for user %s: %w", userID, err)
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return reports, nil
}

// Delete removes a persisted report.
func (s *ReportService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	return nil
}

// Data decodes a report's stored payload.
func (s *ReportService) Data(report *model.Report) (*model.ReportData, error) {
	var data model.ReportData
	if err := json.Unmarshal(report.Metadata, &data); err != nil {
		return nil, fmt.Errorf("decoding report payload: %w", err)
	}
	return &data, nil
}

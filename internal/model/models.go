package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Category struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"userId"`
	Name      string          `db:"name" json:"name"`
	Type      TransactionType `db:"type" json:"type"`
	Icon      string          `db:"icon" json:"icon"`
	Color     string          `db:"color" json:"color"`
	IsDefault bool            `db:"is_default" json:"isDefault"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID  uuid.UUID       `db:"category_id" json:"categoryId"`
	Type        TransactionType `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
	Date        time.Time       `db:"date" json:"date"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// TransactionWithCategory joins the category name and color for list views
// and for category bucketing.
type TransactionWithCategory struct {
	Transaction
	CategoryName  string `db:"category_name" json:"categoryName"`
	CategoryColor string `db:"category_color" json:"categoryColor"`
}

type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodWeekly || p == BudgetPeriodYearly
}

type Budget struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID uuid.UUID       `db:"category_id" json:"categoryId"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Period     BudgetPeriod    `db:"period" json:"period"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

type BudgetWithUsage struct {
	Budget
	CategoryName    string          `db:"category_name" json:"categoryName"`
	Usage           decimal.Decimal `json:"usage"`
	UsagePercentage float64         `json:"usagePercentage"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
	IsOverBudget    bool            `json:"isOverBudget"`
}

type SavingsGoal struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	TargetAmount  decimal.Decimal `db:"target_amount" json:"targetAmount"`
	CurrentAmount decimal.Decimal `db:"current_amount" json:"currentAmount"`
	TargetDate    time.Time       `db:"target_date" json:"targetDate"`
	IsCompleted   bool            `db:"is_completed" json:"isCompleted"`
	Color         string          `db:"color" json:"color"`
	Icon          string          `db:"icon" json:"icon"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// Summary holds aggregate totals for a set of transactions.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	TransactionCount int             `json:"transactionCount"`
}

// PeriodBucket is one entry of a time-bucketed breakdown. Period is
// "YYYY-MM" for monthly buckets and the week's start date "YYYY-MM-DD"
// for weekly buckets.
type PeriodBucket struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type CategoryBucket struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
	Count    int             `json:"count"`
}

// GoalProjection is the amount-per-period plan for reaching a savings
// goal by its target date.
type GoalProjection struct {
	GoalID           uuid.UUID       `json:"goalId"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
	TotalDays        int             `json:"totalDays"`
	TotalWeeks       int             `json:"totalWeeks"`
	TotalMonths      int             `json:"totalMonths"`
	DailyAmount      decimal.Decimal `json:"dailyAmount"`
	WeeklyAmount     decimal.Decimal `json:"weeklyAmount"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	FeasibilityScore int             `json:"feasibilityScore"`
	Recommendations  []string        `json:"recommendations"`
}

type SavingsGoalWithProgress struct {
	SavingsGoal
	ProgressPercentage float64         `json:"progressPercentage"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	DaysRemaining      int             `json:"daysRemaining"`
	IsOverdue          bool            `json:"isOverdue"`
	IsNearDeadline     bool            `json:"isNearDeadline"`
}

// GoalSavingsAnalysis is the per-goal pacing section of a report.
type GoalSavingsAnalysis struct {
	GoalID                 uuid.UUID       `json:"goalId"`
	GoalName               string          `json:"goalName"`
	ProgressPercentage     float64         `json:"progressPercentage"`
	MonthsRemaining        int             `json:"monthsRemaining"`
	RequiredMonthlySavings decimal.Decimal `json:"requiredMonthlySavings"`
	IsOnTrack              bool            `json:"isOnTrack"`
}

type FinancialInsights struct {
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	SavingsRate        float64         `json:"savingsRate"`
	TopExpenseCategory string          `json:"topExpenseCategory"`
	BudgetAlerts       int             `json:"budgetAlerts"`
	SavingsGoalsBehind int             `json:"savingsGoalsBehind"`
}

// ReportMetadata records how and when a report payload was assembled.
type ReportMetadata struct {
	PeriodStart      string     `json:"periodStart"`
	PeriodEnd        string     `json:"periodEnd"`
	Type             ReportType `json:"type"`
	GeneratedAt      time.Time  `json:"generatedAt"`
	TransactionCount int        `json:"transactionCount"`
}

// ReportData is the assembled report payload, persisted as the report
// row's metadata.
type ReportData struct {
	Summary           Summary               `json:"summary"`
	MonthlyBreakdown  []PeriodBucket        `json:"monthlyBreakdown"`
	CategoryBreakdown []CategoryBucket      `json:"categoryBreakdown"`
	BudgetUsage       []BudgetWithUsage     `json:"budgetUsage"`
	SavingsAnalysis   []GoalSavingsAnalysis `json:"savingsAnalysis"`
	Insights          FinancialInsights     `json:"insights"`
	Metadata          ReportMetadata        `json:"metadata"`
}

type ReportType string

const (
	ReportTypeMonthly   ReportType = "monthly"
	ReportTypeQuarterly ReportType = "quarterly"
	ReportTypeYearly    ReportType = "yearly"
)

func (t ReportType) Valid() bool {
	return t == ReportTypeMonthly || t == ReportTypeQuarterly || t == ReportTypeYearly
}

const ReportStatusCompleted = "completed"

type Report struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"userId"`
	Title       string          `db:"title" json:"title"`
	Type        ReportType      `db:"type" json:"type"`
	Status      string          `db:"status" json:"status"`
	PeriodStart time.Time       `db:"period_start" json:"periodStart"`
	PeriodEnd   time.Time       `db:"period_end" json:"periodEnd"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

type InsightPriority string

const (
	InsightPriorityHigh   InsightPriority = "high"
	InsightPriorityMedium InsightPriority = "medium"
	InsightPriorityLow    InsightPriority = "low"
)

func (p InsightPriority) Valid() bool {
	return p == InsightPriorityHigh || p == InsightPriorityMedium || p == InsightPriorityLow
}

type AIInsight struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"userId"`
	Type       string          `db:"type" json:"type"`
	Title      string          `db:"title" json:"title"`
	Content    string          `db:"content" json:"content"`
	Priority   InsightPriority `db:"priority" json:"priority"`
	Actionable bool            `db:"actionable" json:"actionable"`
	IsRead     bool            `db:"is_read" json:"isRead"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// Dashboard aggregates
type DashboardData struct {
	Summary            Summary                   `json:"summary"`
	MonthlyTrend       []PeriodBucket            `json:"monthlyTrend"`
	WeeklyTrend        []PeriodBucket            `json:"weeklyTrend"`
	TopCategories      []CategoryBucket          `json:"topCategories"`
	BudgetUsage        []BudgetWithUsage         `json:"budgetUsage"`
	SavingsGoals       []SavingsGoalWithProgress `json:"savingsGoals"`
	RecentTransactions []TransactionWithCategory `json:"recentTransactions"`
}

// DefaultCategory is one entry of the seed set created for every new
// user at registration.
type DefaultCategory struct {
	Name  string
	Type  TransactionType
	Icon  string
	Color string
}

var DefaultCategories = []DefaultCategory{
	{Name: "Salary", Type: TransactionTypeIncome, Icon: "fa-money-bill", Color: "#10B981"},
	{Name: "Bonus", Type: TransactionTypeIncome, Icon: "fa-gift", Color: "#059669"},
	{Name: "Investments", Type: TransactionTypeIncome, Icon: "fa-chart-line", Color: "#047857"},
	{Name: "Freelance", Type: TransactionTypeIncome, Icon: "fa-laptop", Color: "#065F46"},
	{Name: "Other Income", Type: TransactionTypeIncome, Icon: "fa-plus-circle", Color: "#064E3B"},
	{Name: "Food", Type: TransactionTypeExpense, Icon: "fa-utensils", Color: "#EF4444"},
	{Name: "Transportation", Type: TransactionTypeExpense, Icon: "fa-car", Color: "#F59E0B"},
	{Name: "Entertainment", Type: TransactionTypeExpense, Icon: "fa-film", Color: "#8B5CF6"},
	{Name: "Health", Type: TransactionTypeExpense, Icon: "fa-heartbeat", Color: "#EC4899"},
	{Name: "Shopping", Type: TransactionTypeExpense, Icon: "fa-shopping-bag", Color: "#3B82F6"},
	{Name: "Bills", Type: TransactionTypeExpense, Icon: "fa-file-invoice", Color: "#6366F1"},
	{Name: "Education", Type: TransactionTypeExpense, Icon: "fa-graduation-cap", Color: "#14B8A6"},
	{Name: "Other Expense", Type: TransactionTypeExpense, Icon: "fa-ellipsis-h", Color: "#6B7280"},
}

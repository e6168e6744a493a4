package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneywise/backend/internal/model"
	"github.com/moneywise/backend/internal/repository"
	"github.com/moneywise/backend/pkg/datetime"
)

// overBudgetThreshold is the usage percentage above which a budget is
// flagged as over budget.
const overBudgetThreshold = 80.0

var ErrInvalidBudgetPeriod = errors.New("budget period must be monthly, weekly or yearly")

// BudgetRepositoryInterface defines the contract for budget data access.
// Implementations must be safe for concurrent use.
type BudgetRepositoryInterface interface {
	Create(ctx context.Context, budget *model.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.BudgetWithUsage, error)
	Update(ctx context.Context, budget *model.Budget) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TransactionRepoForBudget provides the spending data needed for budget
// usage calculations.
type TransactionRepoForBudget interface {
	GetSpentByCategory(ctx context.Context, userID, categoryID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error)
}

// BudgetService handles business logic for budget management.
// It tracks spending against budget limits and calculates remaining amounts.
type BudgetService struct {
	repo            BudgetRepositoryInterface
	transactionRepo TransactionRepoForBudget
	categories      CategoryRepositoryInterface
	now             func() time.Time
}

// NewBudgetService creates a new BudgetService with the given repositories.
func NewBudgetService(repo BudgetRepositoryInterface, transactionRepo TransactionRepoForBudget, categories CategoryRepositoryInterface) *BudgetService {
	return &BudgetService{
		repo:            repo,
		transactionRepo: transactionRepo,
		categories:      categories,
		now:             time.Now,
	}
}

type CreateBudgetInput struct {
	CategoryID uuid.UUID          `json:"categoryId"`
	Amount     decimal.Decimal    `json:"amount"`
	Period     model.BudgetPeriod `json:"period"`
}

type UpdateBudgetInput struct {
	CategoryID uuid.UUID          `json:"categoryId"`
	Amount     decimal.Decimal    `json:"amount"`
	Period     model.BudgetPeriod `json:"period"`
}

// Create creates a new budget for the given user.
// The period defaults to monthly and the category must be one of the
// user's expense categories.
func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, input CreateBudgetInput) (*model.Budget, error) {
	if input.Period == "" {
		input.Period = model.BudgetPeriodMonthly
	}
	if !input.Period.Valid() {
		return nil, ErrInvalidBudgetPeriod
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := s.validateExpenseCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	budget := &model.Budget{
		UserID:     userID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Period:     input.Period,
	}

	if err := s.repo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("creating budget: %w", err)
	}

	return budget, nil
}

func (s *BudgetService) validateExpenseCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("fetching category %s: %w", categoryID, err)
	}
	if category.UserID != userID {
		return ErrNotOwner
	}
	if category.Type != model.TransactionTypeExpense {
		return ErrCategoryTypeMismatch
	}
	return nil
}

// Get retrieves a budget by its ID.
func (s *BudgetService) Get(ctx context.Context, id, userID uuid.UUID) (*model.Budget, error) {
	budget, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting budget %s: %w", id, err)
	}
	if budget.UserID != userID {
		return nil, repository.ErrBudgetNotFound
	}
	return budget, nil
}

// ListWithUsage retrieves the user's budgets with spending calculated
// over each budget's current period window.
func (s *BudgetService) ListWithUsage(ctx context.Context, userID uuid.UUID) ([]model.BudgetWithUsage, error) {
	budgets, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets for user %s: %w", userID, err)
	}

	now := s.now()
	for i := range budgets {
		start, end := periodWindow(budgets[i].Period, now)

		spent, err := s.transactionRepo.GetSpentByCategory(ctx, userID, budgets[i].CategoryID, start, end)
		if err != nil {
			return nil, fmt.Errorf("calculating usage for budget %s: %w", budgets[i].ID, err)
		}

		budgets[i].Usage = spent
		if !budgets[i].Amount.IsZero() {
			budgets[i].UsagePercentage = spent.Div(budgets[i].Amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		budgets[i].IsOverBudget = budgets[i].UsagePercentage > overBudgetThreshold

		remaining := budgets[i].Amount.Sub(spent)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		budgets[i].RemainingBudget = remaining
	}

	if budgets == nil {
		budgets = []model.BudgetWithUsage{}
	}
	return budgets, nil
}

// Update modifies an existing budget.
// Returns ErrBudgetNotFound if the budget does not exist or belongs to another user.
func (s *BudgetService) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, input UpdateBudgetInput) (*model.Budget, error) {
	budget, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching budget %s for update: %w", id, err)
	}

	if budget.UserID != userID {
		return nil, repository.ErrBudgetNotFound
	}

	if input.Period != "" {
		if !input.Period.Valid() {
			return nil, ErrInvalidBudgetPeriod
		}
		budget.Period = input.Period
	}
	if !input.Amount.IsZero() {
		if input.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		budget.Amount = input.Amount
	}
	if input.CategoryID != uuid.Nil && input.CategoryID != budget.CategoryID {
		if err := s.validateExpenseCategory(ctx, userID, input.CategoryID); err != nil {
			return nil, err
		}
		budget.CategoryID = input.CategoryID
	}

	if err := s.repo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("updating budget %s: %w", id, err)
	}

	return budget, nil
}

// Delete removes a budget by ID for the given user.
func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("deleting budget %s: %w", id, err)
	}
	return nil
}

// periodWindow returns the window spending is measured over for a
// budget period: from the start of the current week, month or year
// through the end of today.
func periodWindow(period model.BudgetPeriod, now time.Time) (start, end time.Time) {
	switch period {
	case model.BudgetPeriodWeekly:
		start = datetime.StartOfWeek(now)
	case model.BudgetPeriodYearly:
		start = datetime.StartOfYear(now)
	default:
		start = datetime.StartOfMonth(now)
	}
	return start, datetime.EndOfDay(now)
}

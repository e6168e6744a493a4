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

var ErrGoalNameRequired = errors.New("savings goal name is required")

// SavingsGoalRepositoryInterface defines the contract for savings goal data access.
// Implementations must be safe for concurrent use.
type SavingsGoalRepositoryInterface interface {
	Create(ctx context.Context, goal *model.SavingsGoal) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SavingsGoal, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.SavingsGoal, error)
	Update(ctx context.Context, goal *model.SavingsGoal) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	AddContribution(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) (*model.SavingsGoal, error)
	GetTotalSavings(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// SavingsGoalService handles business logic for savings goals,
// contributions and goal projections.
type SavingsGoalService struct {
	repo SavingsGoalRepositoryInterface
	now  func() time.Time
}

// NewSavingsGoalService creates a new SavingsGoalService with the given repository.
func NewSavingsGoalService(repo SavingsGoalRepositoryInterface) *SavingsGoalService {
	return &SavingsGoalService{repo: repo, now: time.Now}
}

type CreateSavingsGoalInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   datetime.Date   `json:"targetDate"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
}

type UpdateSavingsGoalInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   *datetime.Date  `json:"targetDate"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
}

type ContributeInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// SimulateGoalInput describes a hypothetical goal for projection
// without persisting anything.
type SimulateGoalInput struct {
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    datetime.Date   `json:"targetDate"`
}

// SavingsGoalWithProjection pairs a goal's progress snapshot with the
// saving plan needed to reach it on time.
type SavingsGoalWithProjection struct {
	model.SavingsGoalWithProgress
	Projection *model.GoalProjection `json:"projection,omitempty"`
}

// Create creates a new savings goal for the given user.
// Defaults color to blue and icon to piggy-bank if not specified.
func (s *SavingsGoalService) Create(ctx context.Context, userID uuid.UUID, input CreateSavingsGoalInput) (*model.SavingsGoal, error) {
	if input.Name == "" {
		return nil, ErrGoalNameRequired
	}
	if !input.TargetAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !input.TargetDate.After(s.now()) {
		return nil, ErrInvalidGoalDate
	}

	goal := &model.SavingsGoal{
		UserID:       userID,
		Name:         input.Name,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		TargetDate:   input.TargetDate.Time,
		Color:        input.Color,
		Icon:         input.Icon,
	}

	if goal.Color == "" {
		goal.Color = "#3B82F6"
	}
	if goal.Icon == "" {
		goal.Icon = "piggy-bank"
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("creating savings goal: %w", err)
	}

	return goal, nil
}

// Get retrieves a savings goal by its ID.
func (s *SavingsGoalService) Get(ctx context.Context, id, userID uuid.UUID) (*model.SavingsGoal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting savings goal %s: %w", id, err)
	}
	if goal.UserID != userID {
		return nil, repository.ErrSavingsGoalNotFound
	}
	return goal, nil
}

// List retrieves all savings goals for a user with progress fields.
func (s *SavingsGoalService) List(ctx context.Context, userID uuid.UUID) ([]model.SavingsGoalWithProgress, error) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing savings goals for user %s: %w", userID, err)
	}

	now := s.now()
	result := make([]model.SavingsGoalWithProgress, len(goals))
	for i, goal := range goals {
		result[i] = GoalProgress(goal, now)
	}
	return result, nil
}

// ListWithProjections retrieves all goals with progress and, for goals
// that are not yet completed and still have time left, a saving plan.
func (s *SavingsGoalService) ListWithProjections(ctx context.Context, userID uuid.UUID) ([]SavingsGoalWithProjection, error) {
	goals, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing savings goals for user %s: %w", userID, err)
	}

	now := s.now()
	result := make([]SavingsGoalWithProjection, len(goals))
	for i, goal := range goals {
		progress := GoalProgress(goal, now)
		entry := SavingsGoalWithProjection{SavingsGoalWithProgress: progress}

		if !progress.IsCompleted && goal.TargetDate.After(now) {
			projection, err := ProjectGoal(goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, now)
			if err == nil {
				projection.GoalID = goal.ID
				entry.Projection = projection
			}
		}
		result[i] = entry
	}
	return result, nil
}

// Project builds the saving plan for an existing goal.
func (s *SavingsGoalService) Project(ctx context.Context, id, userID uuid.UUID) (*model.GoalProjection, error) {
	goal, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	projection, err := ProjectGoal(goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, s.now())
	if err != nil {
		return nil, err
	}
	projection.GoalID = goal.ID
	return projection, nil
}

// Simulate builds a saving plan for a hypothetical goal. Nothing is
// persisted.
func (s *SavingsGoalService) Simulate(input SimulateGoalInput) (*model.GoalProjection, error) {
	if !input.TargetAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return ProjectGoal(input.TargetAmount, input.CurrentAmount, input.TargetDate.Time, s.now())
}

// Update modifies an existing savings goal.
// Returns ErrSavingsGoalNotFound if the goal does not exist or belongs to another user.
func (s *SavingsGoalService) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, input UpdateSavingsGoalInput) (*model.SavingsGoal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching savings goal %s for update: %w", id, err)
	}

	if goal.UserID != userID {
		return nil, repository.ErrSavingsGoalNotFound
	}

	if input.Name != "" {
		goal.Name = input.Name
	}
	if input.Description != "" {
		goal.Description = input.Description
	}
	if !input.TargetAmount.IsZero() {
		if input.TargetAmount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		goal.TargetAmount = input.TargetAmount
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate.Time
	}
	if input.Color != "" {
		goal.Color = input.Color
	}
	if input.Icon != "" {
		goal.Icon = input.Icon
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("updating savings goal %s: %w", id, err)
	}

	return goal, nil
}

// Delete removes a savings goal by ID for the given user.
func (s *SavingsGoalService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("deleting savings goal %s: %w", id, err)
	}
	return nil
}

// Contribute adds a contribution amount to a savings goal. The goal is
// marked completed when the contribution reaches the target; completion
// never reverts.
func (s *SavingsGoalService) Contribute(ctx context.Context, id uuid.UUID, userID uuid.UUID, amount decimal.Decimal) (*model.SavingsGoal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	goal, err := s.repo.AddContribution(ctx, id, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("adding contribution to savings goal %s: %w", id, err)
	}
	return goal, nil
}

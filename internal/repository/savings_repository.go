package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moneywise/backend/internal/model"
	"github.com/shopspring/decimal"
)

var ErrSavingsGoalNotFound = errors.New("savings goal not found")

type SavingsGoalRepository struct {
	db *sqlx.DB
}

func NewSavingsGoalRepository(db *sqlx.DB) *SavingsGoalRepository {
	return &SavingsGoalRepository{db: db}
}

func (r *SavingsGoalRepository) Create(ctx context.Context, goal *model.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (id, user_id, name, description, target_amount, current_amount, target_date, is_completed, color, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	goal.ID = uuid.New()
	if goal.CurrentAmount.IsZero() {
		goal.CurrentAmount = decimal.Zero
	}
	return r.db.QueryRowxContext(ctx, query,
		goal.ID, goal.UserID, goal.Name, goal.Description, goal.TargetAmount,
		goal.CurrentAmount, goal.TargetDate, goal.IsCompleted, goal.Color, goal.Icon,
	).Scan(&goal.CreatedAt, &goal.UpdatedAt)
}

func (r *SavingsGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SavingsGoal, error) {
	var goal model.SavingsGoal
	query := `SELECT * FROM savings_goals WHERE id = $1`
	err := r.db.GetContext(ctx, &goal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSavingsGoalNotFound
	}
	return &goal, err
}

func (r *SavingsGoalRepository) List(ctx context.Context, userID uuid.UUID) ([]model.SavingsGoal, error) {
	var goals []model.SavingsGoal
	query := `SELECT * FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &goals, query, userID)
	return goals, err
}

func (r *SavingsGoalRepository) Update(ctx context.Context, goal *model.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET name = $2, description = $3, target_amount = $4, current_amount = $5, target_date = $6, is_completed = $7, color = $8, icon = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $10
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		goal.ID, goal.Name, goal.Description, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.IsCompleted, goal.Color, goal.Icon, goal.UserID,
	).Scan(&goal.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSavingsGoalNotFound
	}
	return err
}

func (r *SavingsGoalRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSavingsGoalNotFound
	}
	return nil
}

// AddContribution increments current_amount in place so concurrent
// contributions never clobber each other, and returns the updated row.
func (r *SavingsGoalRepository) AddContribution(ctx context.Context, id uuid.UUID, userID uuid.UUID, amount decimal.Decimal) (*model.SavingsGoal, error) {
	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $3,
		    is_completed = is_completed OR current_amount + $3 >= target_amount,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING *`

	var goal model.SavingsGoal
	err := r.db.GetContext(ctx, &goal, query, id, userID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSavingsGoalNotFound
	}
	return &goal, err
}

func (r *SavingsGoalRepository) GetTotalSavings(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(current_amount), 0) FROM savings_goals WHERE user_id = $1`
	err := r.db.GetContext(ctx, &total, query, userID)
	return total, err
}

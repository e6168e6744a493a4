package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moneywise/backend/internal/model"
)

var ErrBudgetNotFound = errors.New("budget not found")

type BudgetRepository struct {
	db *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *model.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	budget.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID, budget.Amount, budget.Period,
	).Scan(&budget.CreatedAt, &budget.UpdatedAt)
}

func (r *BudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	query := `SELECT * FROM budgets WHERE id = $1`
	err := r.db.GetContext(ctx, &budget, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBudgetNotFound
	}
	return &budget, err
}

// List returns the user's budgets joined with their category names,
// ordered by category name for stable display.
func (r *BudgetRepository) List(ctx context.Context, userID uuid.UUID) ([]model.BudgetWithUsage, error) {
	var budgets []model.BudgetWithUsage
	query := `
		SELECT b.*, c.name AS category_name
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY c.name`
	err := r.db.SelectContext(ctx, &budgets, query, userID)
	return budgets, err
}

func (r *BudgetRepository) Update(ctx context.Context, budget *model.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $2, amount = $3, period = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $5
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		budget.ID, budget.CategoryID, budget.Amount, budget.Period, budget.UserID,
	).Scan(&budget.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBudgetNotFound
	}
	return err
}

func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

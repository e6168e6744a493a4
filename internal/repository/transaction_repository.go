package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moneywise/backend/internal/model"
	"github.com/shopspring/decimal"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, type, amount, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`

	tx.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		tx.ID, tx.UserID, tx.CategoryID, tx.Type, tx.Amount, tx.Description, tx.Date,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TransactionWithCategory, error) {
	var tx model.TransactionWithCategory
	query := `
		SELECT t.*, c.name AS category_name, c.color AS category_color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`
	err := r.db.GetContext(ctx, &tx, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	return &tx, err
}

func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filters TransactionFilters) ([]model.TransactionWithCategory, error) {
	var transactions []model.TransactionWithCategory
	query := `
		SELECT t.*, c.name AS category_name, c.color AS category_color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		AND ($2::text IS NULL OR t.type = $2)
		AND ($3::uuid IS NULL OR t.category_id = $3)
		AND ($4::timestamp IS NULL OR t.date >= $4)
		AND ($5::timestamp IS NULL OR t.date <= $5)
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $6 OFFSET $7`

	err := r.db.SelectContext(ctx, &transactions, query,
		userID, filters.Type, filters.CategoryID, filters.StartDate, filters.EndDate, filters.Limit, filters.Offset,
	)
	return transactions, err
}

// ListForPeriod returns every transaction in the inclusive date range,
// oldest first, joined with its category. This is the feed for the
// aggregation and report code.
func (r *TransactionRepository) ListForPeriod(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]model.TransactionWithCategory, error) {
	var transactions []model.TransactionWithCategory
	query := `
		SELECT t.*, c.name AS category_name, c.color AS category_color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date ASC, t.created_at ASC`

	err := r.db.SelectContext(ctx, &transactions, query, userID, startDate, endDate)
	return transactions, err
}

func (r *TransactionRepository) Update(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $2, type = $3, amount = $4, description = $5, date = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $7
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		tx.ID, tx.CategoryID, tx.Type, tx.Amount, tx.Description, tx.Date, tx.UserID,
	).Scan(&tx.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTransactionNotFound
	}
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetSpentByCategory sums expense amounts for one category in the
// inclusive date range. Used for budget usage.
func (r *TransactionRepository) GetSpentByCategory(ctx context.Context, userID, categoryID uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND category_id = $2 AND date >= $3 AND date <= $4`

	var spent decimal.Decimal
	err := r.db.GetContext(ctx, &spent, query, userID, categoryID, startDate, endDate)
	return spent, err
}

func (r *TransactionRepository) GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.TransactionWithCategory, error) {
	var transactions []model.TransactionWithCategory
	query := `
		SELECT t.*, c.name AS category_name, c.color AS category_color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &transactions, query, userID, limit)
	return transactions, err
}

type TransactionFilters struct {
	Type       *string
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

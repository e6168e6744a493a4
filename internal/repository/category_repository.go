package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moneywise/backend/internal/model"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, type, icon, color, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at`

	category.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		category.ID, category.UserID, category.Name, category.Type,
		category.Icon, category.Color, category.IsDefault,
	).Scan(&category.CreatedAt)
}

// CreateBatch inserts the categories in one transaction. Used to seed
// the default set at registration.
func (r *CategoryRepository) CreateBatch(ctx context.Context, categories []model.Category) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO categories (id, user_id, name, type, icon, color, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	for i := range categories {
		categories[i].ID = uuid.New()
		c := categories[i]
		if _, err := tx.ExecContext(ctx, query, c.ID, c.UserID, c.Name, c.Type, c.Icon, c.Color, c.IsDefault); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1`
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	return &category, err
}

func (r *CategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY type, name`
	err := r.db.SelectContext(ctx, &categories, query, userID)
	return categories, err
}

func (r *CategoryRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM categories WHERE user_id = $1`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET name = $2, icon = $3, color = $4
		WHERE id = $1 AND user_id = $5`
	result, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Icon, category.Color, category.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

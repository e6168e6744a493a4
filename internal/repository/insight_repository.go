package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moneywise/backend/internal/model"
)

type InsightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

func (r *InsightRepository) Create(ctx context.Context, insight *model.AIInsight) error {
	query := `
		INSERT INTO ai_insights (id, user_id, type, title, content, priority, actionable, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW())
		RETURNING created_at`

	insight.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		insight.ID, insight.UserID, insight.Type, insight.Title, insight.Content, insight.Priority, insight.Actionable,
	).Scan(&insight.CreatedAt)
}

func (r *InsightRepository) List(ctx context.Context, userID uuid.UUID) ([]model.AIInsight, error) {
	var insights []model.AIInsight
	query := `SELECT * FROM ai_insights WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &insights, query, userID)
	return insights, err
}

// LatestCreatedAt returns the newest insight timestamp for the user,
// or the zero time when none exist.
func (r *InsightRepository) LatestCreatedAt(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	var latest *time.Time
	query := `SELECT MAX(created_at) FROM ai_insights WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &latest, query, userID); err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return *latest, nil
}

func (r *InsightRepository) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `UPDATE ai_insights SET is_read = true WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

func (r *InsightRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM ai_insights WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// ListUserIDsWithTransactions returns users that have at least one
// transaction, for the scheduled insight refresh.
func (r *InsightRepository) ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT DISTINCT user_id FROM transactions`
	err := r.db.SelectContext(ctx, &ids, query)
	return ids, err
}

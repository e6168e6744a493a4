package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/moneywise/backend/internal/model"
)

var ErrReportNotFound = errors.New("report not found")

// ReportRepository persists assembled reports. The report payload is
// stored as the metadata JSON column.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (id, user_id, title, type, status, period_start, period_end, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at`

	report.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.UserID, report.Title, report.Type, report.Status, report.PeriodStart, report.PeriodEnd, report.Metadata,
	).Scan(&report.CreatedAt)
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*model.Report, error) {
	var report model.Report
	query := `SELECT * FROM reports WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &report, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	return &report, err
}

func (r *ReportRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Report, error) {
	var reports []model.Report
	query := `SELECT * FROM reports WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &reports, query, userID)
	return reports, err
}

func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM reports WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}
	return nil
}

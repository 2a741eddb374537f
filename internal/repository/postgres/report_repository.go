package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (reporter_id, target_user_id, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		report.ReporterID, report.TargetUserID, report.Reason, report.Status,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id int) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, `SELECT * FROM reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus, limit, offset int) ([]*domain.Report, error) {
	var reports []*domain.Report
	query := `
		SELECT * FROM reports
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &reports, query, status, limit, offset)
	return reports, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id int, status domain.ReportStatus) error {
	query := `
		UPDATE reports
		SET status = $1, resolved_at = CASE WHEN $1 = 'OPEN' THEN NULL ELSE CURRENT_TIMESTAMP END
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *reportRepository) CountByStatus(ctx context.Context, status domain.ReportStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports WHERE status = $1`, status)
	return count, err
}

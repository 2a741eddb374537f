package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id int) (*domain.Report, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus, limit, offset int) ([]*domain.Report, error)
	UpdateStatus(ctx context.Context, id int, status domain.ReportStatus) error
	CountByStatus(ctx context.Context, status domain.ReportStatus) (int, error)
}

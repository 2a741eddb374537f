package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID int, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
	MarkAllRead(ctx context.Context, userID int) error
	CountUnread(ctx context.Context, userID int) (int, error)
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, content, action_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at
	`
	return r.db.QueryRowContext(ctx, query, n.UserID, n.Type, n.Content, n.ActionURL).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID int, limit, offset int) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`, userID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID)
	return count, err
}

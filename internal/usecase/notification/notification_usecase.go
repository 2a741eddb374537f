package notification

import (
	"context"
	"fmt"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/realtime"
	"github.com/matchpoint-app/backend/internal/repository"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	publisher        realtime.Publisher
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	publisher realtime.Publisher,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Notify persists a notification and pushes it to the user's personal room.
// The row is the source of truth; the push is best effort.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error {
	n := &domain.Notification{
		UserID:    userID,
		Type:      typ,
		Content:   content,
		ActionURL: actionURL,
	}
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	uc.publisher.PublishToUser(userID, realtime.EventNotification, n)
	return nil
}

// List returns the user's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID int, limit, offset int) ([]*domain.Notification, error) {
	return uc.notificationRepo.ListForUser(ctx, userID, limit, offset)
}

// MarkRead marks one notification as read. Scoped to the owner.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID int) error {
	return uc.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every notification of the user as read.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID int) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

// CountUnread returns the user's unread notification count.
func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID int) (int, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

package domain

import "time"

type NotificationType string

const (
	NotificationMatch      NotificationType = "MATCH"
	NotificationPoints     NotificationType = "POINTS"
	NotificationModeration NotificationType = "MODERATION"
	NotificationOrder      NotificationType = "ORDER"
)

type Notification struct {
	ID        int              `json:"id" db:"id"`
	UserID    int              `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Content   string           `json:"content" db:"content"`
	ActionURL *string          `json:"action_url" db:"action_url"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

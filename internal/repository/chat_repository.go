package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type ChatRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Chat, error)
	GetByMatchID(ctx context.Context, matchID int) (*domain.Chat, error)
	IsMember(ctx context.Context, chatID, userID int) (bool, error)
	GetMembers(ctx context.Context, chatID int) ([]*domain.ChatMember, error)
	ListForUser(ctx context.Context, userID int) ([]*domain.ChatSummary, error)
	Count(ctx context.Context) (int, error)

	AddMessage(ctx context.Context, message *domain.Message) error
	// GetMessages returns messages ordered by sent_at ascending, sender joined in.
	// limit <= 0 returns the full history.
	GetMessages(ctx context.Context, chatID int, limit, offset int) ([]*domain.Message, error)
}

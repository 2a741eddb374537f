package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) GetByID(ctx context.Context, id int) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT * FROM chats WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetByMatchID(ctx context.Context, matchID int) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT * FROM chats WHERE match_id = $1`, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) IsMember(ctx context.Context, chatID, userID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM chat_members WHERE chat_id = $1 AND user_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, chatID, userID)
	return exists, err
}

func (r *chatRepository) GetMembers(ctx context.Context, chatID int) ([]*domain.ChatMember, error) {
	var members []*domain.ChatMember
	query := `SELECT * FROM chat_members WHERE chat_id = $1 ORDER BY joined_at`
	err := r.db.SelectContext(ctx, &members, query, chatID)
	return members, err
}

func (r *chatRepository) ListForUser(ctx context.Context, userID int) ([]*domain.ChatSummary, error) {
	// One-to-one chats carry the other member's identity; the last message is
	// joined in for the list view.
	query := `
		SELECT c.id AS chat_id, c.is_group, c.created_at,
		       other.user_id AS other_user_id, u.display_name AS other_name,
		       lm.content AS last_message, lm.sent_at AS last_sent_at
		FROM chats c
		JOIN chat_members cm ON cm.chat_id = c.id AND cm.user_id = $1
		LEFT JOIN chat_members other ON other.chat_id = c.id AND other.user_id <> $1 AND NOT c.is_group
		LEFT JOIN users u ON u.id = other.user_id
		LEFT JOIN LATERAL (
			SELECT content, sent_at FROM messages
			WHERE chat_id = c.id
			ORDER BY sent_at DESC
			LIMIT 1
		) lm ON true
		ORDER BY COALESCE(lm.sent_at, c.created_at) DESC
	`
	var chats []*domain.ChatSummary
	err := r.db.SelectContext(ctx, &chats, query, userID)
	return chats, err
}

func (r *chatRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chats`)
	return count, err
}

func (r *chatRepository) AddMessage(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (chat_id, sender_id, message_type, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		message.ChatID, message.SenderID, message.MessageType, message.Content,
	).Scan(&message.ID, &message.SentAt)
}

func (r *chatRepository) GetMessages(ctx context.Context, chatID int, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message

	query := `
		SELECT m.id, m.chat_id, m.sender_id, m.message_type, m.content, m.sent_at,
		       u.display_name AS sender_name
		FROM messages m
		LEFT JOIN users u ON u.id = m.sender_id
		WHERE m.chat_id = $1
		ORDER BY m.sent_at ASC, m.id ASC
	`
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &messages, query, chatID, limit, offset)
		return messages, err
	}

	err := r.db.SelectContext(ctx, &messages, query, chatID)
	return messages, err
}

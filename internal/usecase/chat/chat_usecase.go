package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/realtime"
	"github.com/matchpoint-app/backend/internal/repository"
)

type ChatUseCase struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	publisher realtime.Publisher
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	publisher realtime.Publisher,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// SendMessageRequest represents an outgoing chat message
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// ListChats returns the user's chats with their last message.
func (uc *ChatUseCase) ListChats(ctx context.Context, userID int) ([]*domain.ChatSummary, error) {
	return uc.chatRepo.ListForUser(ctx, userID)
}

// EnsureMember returns ErrNotChatMember unless userID belongs to the chat.
func (uc *ChatUseCase) EnsureMember(ctx context.Context, chatID, userID int) error {
	if _, err := uc.chatRepo.GetByID(ctx, chatID); err != nil {
		return err
	}
	isMember, err := uc.chatRepo.IsMember(ctx, chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return domain.ErrNotChatMember
	}
	return nil
}

// SendMessage persists a TEXT message and fans it out to the chat room.
// Only members may send; banned users may not.
func (uc *ChatUseCase) SendMessage(ctx context.Context, chatID, senderID int, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrInvalidInput
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.CanParticipate() {
		return nil, domain.ErrUserBanned
	}

	if err := uc.EnsureMember(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ChatID:      chatID,
		SenderID:    &senderID,
		MessageType: domain.MessageText,
		Content:     content,
		SenderName:  &sender.DisplayName,
	}
	if err := uc.chatRepo.AddMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to add message: %w", err)
	}

	uc.publisher.PublishToChat(chatID, realtime.EventReceiveMessage, message)
	return message, nil
}

// GetChatMessages returns the chat history in send order. Only members may
// read. limit <= 0 returns the full history.
func (uc *ChatUseCase) GetChatMessages(ctx context.Context, chatID, userID int, limit, offset int) ([]*domain.Message, error) {
	if err := uc.EnsureMember(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return uc.chatRepo.GetMessages(ctx, chatID, limit, offset)
}

// GetMembers returns the chat membership. Only members may see it.
func (uc *ChatUseCase) GetMembers(ctx context.Context, chatID, userID int) ([]*domain.ChatMember, error) {
	if err := uc.EnsureMember(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return uc.chatRepo.GetMembers(ctx, chatID)
}

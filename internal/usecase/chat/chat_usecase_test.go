package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type fakeChatRepo struct {
	repository.ChatRepository

	chats    map[int]*domain.Chat
	members  map[int][]int
	messages map[int][]*domain.Message
	nextID   int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[int]*domain.Chat),
		members:  make(map[int][]int),
		messages: make(map[int][]*domain.Message),
		nextID:   1,
	}
}

func (f *fakeChatRepo) addChat(memberIDs ...int) int {
	id := f.nextID
	f.nextID++
	f.chats[id] = &domain.Chat{ID: id}
	f.members[id] = memberIDs
	return id
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id int) (*domain.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return c, nil
}

func (f *fakeChatRepo) IsMember(ctx context.Context, chatID, userID int) (bool, error) {
	for _, id := range f.members[chatID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChatRepo) AddMessage(ctx context.Context, m *domain.Message) error {
	m.ID = len(f.messages[m.ChatID]) + 1
	m.SentAt = time.Now()
	f.messages[m.ChatID] = append(f.messages[m.ChatID], m)
	return nil
}

func (f *fakeChatRepo) GetMessages(ctx context.Context, chatID int, limit, offset int) ([]*domain.Message, error) {
	msgs := f.messages[chatID]
	if offset > len(msgs) {
		return nil, nil
	}
	msgs = msgs[offset:]
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[int]*domain.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type fakePublisher struct {
	chatEvents map[int][]string
}

func (f *fakePublisher) PublishToChat(chatID int, event string, payload interface{}) {
	if f.chatEvents == nil {
		f.chatEvents = make(map[int][]string)
	}
	f.chatEvents[chatID] = append(f.chatEvents[chatID], event)
}

func (f *fakePublisher) PublishToUser(userID int, event string, payload interface{}) {}

func newTestUseCase() (*ChatUseCase, *fakeChatRepo, *fakePublisher) {
	chatRepo := newFakeChatRepo()
	userRepo := &fakeUserRepo{users: map[int]*domain.User{
		1: {ID: 1, DisplayName: "Alice"},
		2: {ID: 2, DisplayName: "Bob"},
		3: {ID: 3, DisplayName: "Eve"},
		4: {ID: 4, DisplayName: "Banned", IsBanned: true},
	}}
	publisher := &fakePublisher{}
	return NewChatUseCase(chatRepo, userRepo, publisher), chatRepo, publisher
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("member sends and room hears it", func(t *testing.T) {
		uc, repo, publisher := newTestUseCase()
		chatID := repo.addChat(1, 2)

		msg, err := uc.SendMessage(ctx, chatID, 1, "hey there")
		require.NoError(t, err)
		assert.Equal(t, domain.MessageText, msg.MessageType)
		require.NotNil(t, msg.SenderID)
		assert.Equal(t, 1, *msg.SenderID)
		assert.Equal(t, []string{"receive_message"}, publisher.chatEvents[chatID])
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		uc, repo, publisher := newTestUseCase()
		chatID := repo.addChat(1, 2)

		_, err := uc.SendMessage(ctx, chatID, 3, "let me in")
		assert.ErrorIs(t, err, domain.ErrNotChatMember)
		assert.Empty(t, publisher.chatEvents[chatID])
		assert.Empty(t, repo.messages[chatID])
	})

	t.Run("banned member cannot send", func(t *testing.T) {
		uc, repo, _ := newTestUseCase()
		chatID := repo.addChat(1, 4)

		_, err := uc.SendMessage(ctx, chatID, 4, "hello")
		assert.ErrorIs(t, err, domain.ErrUserBanned)
	})

	t.Run("blank content is rejected", func(t *testing.T) {
		uc, repo, _ := newTestUseCase()
		chatID := repo.addChat(1, 2)

		_, err := uc.SendMessage(ctx, chatID, 1, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown chat", func(t *testing.T) {
		uc, _, _ := newTestUseCase()

		_, err := uc.SendMessage(ctx, 999, 1, "hello")
		assert.ErrorIs(t, err, domain.ErrChatNotFound)
	})
}

func TestGetChatMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("returns history in send order", func(t *testing.T) {
		uc, repo, _ := newTestUseCase()
		chatID := repo.addChat(1, 2)

		for _, content := range []string{"first", "second", "third"} {
			_, err := uc.SendMessage(ctx, chatID, 1, content)
			require.NoError(t, err)
		}

		messages, err := uc.GetChatMessages(ctx, chatID, 2, 0, 0)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "first", messages[0].Content)
		assert.Equal(t, "third", messages[2].Content)
	})

	t.Run("non-member cannot read", func(t *testing.T) {
		uc, repo, _ := newTestUseCase()
		chatID := repo.addChat(1, 2)

		_, err := uc.GetChatMessages(ctx, chatID, 3, 0, 0)
		assert.ErrorIs(t, err, domain.ErrNotChatMember)
	})

	t.Run("limit pages the history", func(t *testing.T) {
		uc, repo, _ := newTestUseCase()
		chatID := repo.addChat(1, 2)

		for _, content := range []string{"a", "b", "c"} {
			_, err := uc.SendMessage(ctx, chatID, 1, content)
			require.NoError(t, err)
		}

		messages, err := uc.GetChatMessages(ctx, chatID, 1, 2, 1)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "b", messages[0].Content)
	})
}

package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type fakeMatchRepo struct {
	repository.MatchRepository

	matches map[int]*domain.Match
	nextID  int

	acceptedChat    *domain.Chat
	acceptedWelcome *domain.Message
	acceptCalls     int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*domain.Match), nextID: 1}
}

func (f *fakeMatchRepo) Create(ctx context.Context, m *domain.Match) error {
	// Normalize the pair like the real repository does.
	u1, u2 := m.User1ID, m.User2ID
	if u1 > u2 {
		u1, u2 = u2, u1
	}
	for _, existing := range f.matches {
		if existing.User1ID == u1 && existing.User2ID == u2 {
			return domain.ErrMatchAlreadyExists
		}
	}
	m.ID = f.nextID
	f.nextID++
	m.User1ID, m.User2ID = u1, u2
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) UpdateStatus(ctx context.Context, id int, status domain.MatchStatus) error {
	m, ok := f.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeMatchRepo) AcceptAndCreateChat(ctx context.Context, matchID int) (*domain.Chat, *domain.Message, error) {
	m, ok := f.matches[matchID]
	if !ok {
		return nil, nil, domain.ErrMatchNotFound
	}
	if m.Status != domain.MatchPending {
		return nil, nil, domain.ErrMatchNotPending
	}
	m.Status = domain.MatchAccepted
	f.acceptCalls++

	chatID := 100 + matchID
	f.acceptedChat = &domain.Chat{ID: chatID, MatchID: &matchID}
	f.acceptedWelcome = &domain.Message{
		ChatID:      chatID,
		MessageType: domain.MessageSystem,
		Content:     domain.WelcomeMessage,
	}
	return f.acceptedChat, f.acceptedWelcome, nil
}

func (f *fakeMatchRepo) FindCandidates(ctx context.Context, userID int) ([]*domain.MatchCandidate, error) {
	return []*domain.MatchCandidate{{UserID: 99, DisplayName: "Sam", SharedSports: []string{"tennis"}}}, nil
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

type fakeNotifier struct {
	sent []struct {
		UserID  int
		Type    domain.NotificationType
		Content string
	}
}

func (f *fakeNotifier) Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error {
	f.sent = append(f.sent, struct {
		UserID  int
		Type    domain.NotificationType
		Content string
	}{userID, typ, content})
	return nil
}

type fakePublisher struct {
	userEvents map[int][]string
	chatEvents map[int][]string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{userEvents: make(map[int][]string), chatEvents: make(map[int][]string)}
}

func (f *fakePublisher) PublishToChat(chatID int, event string, payload interface{}) {
	f.chatEvents[chatID] = append(f.chatEvents[chatID], event)
}

func (f *fakePublisher) PublishToUser(userID int, event string, payload interface{}) {
	f.userEvents[userID] = append(f.userEvents[userID], event)
}

func newTestUseCase() (*MatchUseCase, *fakeMatchRepo, *fakeNotifier, *fakePublisher) {
	matchRepo := newFakeMatchRepo()
	userRepo := &fakeUserRepo{users: map[int]*domain.User{
		1: {ID: 1, DisplayName: "Alice"},
		2: {ID: 2, DisplayName: "Bob"},
		3: {ID: 3, DisplayName: "Banned", IsBanned: true},
	}}
	notifier := &fakeNotifier{}
	publisher := newFakePublisher()
	return NewMatchUseCase(matchRepo, userRepo, notifier, publisher), matchRepo, notifier, publisher
}

func TestCreateMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending match and notifies target", func(t *testing.T) {
		uc, _, notifier, publisher := newTestUseCase()

		m, err := uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 2})
		require.NoError(t, err)
		assert.Equal(t, domain.MatchPending, m.Status)
		assert.Equal(t, 1, m.RequesterID)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, 2, notifier.sent[0].UserID)
		assert.Equal(t, domain.NotificationMatch, notifier.sent[0].Type)
		assert.Contains(t, publisher.userEvents[2], "match_update")
	})

	t.Run("rejects self match", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		_, err := uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 1})
		assert.ErrorIs(t, err, domain.ErrCannotMatchSelf)
	})

	t.Run("rejects unknown target", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		_, err := uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 42})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("rejects banned requester", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		_, err := uc.CreateMatch(ctx, 3, &CreateMatchRequest{TargetUserID: 1})
		assert.ErrorIs(t, err, domain.ErrUserBanned)
	})

	t.Run("duplicate pair conflicts in either direction", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		_, err := uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 2})
		require.NoError(t, err)

		_, err = uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 2})
		assert.ErrorIs(t, err, domain.ErrMatchAlreadyExists)

		// Reversed direction hits the same normalized pair.
		_, err = uc.CreateMatch(ctx, 2, &CreateMatchRequest{TargetUserID: 1})
		assert.ErrorIs(t, err, domain.ErrMatchAlreadyExists)
	})
}

func TestAcceptMatch(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*MatchUseCase, *fakeMatchRepo, *fakeNotifier, *fakePublisher, *domain.Match) {
		uc, matchRepo, notifier, publisher := newTestUseCase()
		m, err := uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 2})
		require.NoError(t, err)
		return uc, matchRepo, notifier, publisher, m
	}

	t.Run("accept creates chat with welcome message exactly once", func(t *testing.T) {
		uc, matchRepo, notifier, publisher, m := setup(t)

		resp, err := uc.AcceptMatch(ctx, 2, m.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MatchAccepted, resp.Match.Status)
		require.NotNil(t, resp.Chat)
		require.NotNil(t, resp.WelcomeMessage)
		assert.Equal(t, domain.MessageSystem, resp.WelcomeMessage.MessageType)
		assert.Equal(t, domain.WelcomeMessage, resp.WelcomeMessage.Content)
		assert.Equal(t, 1, matchRepo.acceptCalls)

		// Both participants see the update, the requester gets the answer.
		assert.Contains(t, publisher.userEvents[1], "match_update")
		assert.Contains(t, publisher.userEvents[2], "match_update")
		assert.Contains(t, publisher.userEvents[1], "match_response")
		assert.NotContains(t, publisher.userEvents[2], "match_response")
		require.Len(t, notifier.sent, 2) // proposal + acceptance
		assert.Equal(t, 1, notifier.sent[1].UserID)

		// Second accept must not build a second chat.
		_, err = uc.AcceptMatch(ctx, 2, m.ID)
		assert.ErrorIs(t, err, domain.ErrMatchNotPending)
		assert.Equal(t, 1, matchRepo.acceptCalls)
	})

	t.Run("requester cannot accept own proposal", func(t *testing.T) {
		uc, _, _, _, m := setup(t)

		_, err := uc.AcceptMatch(ctx, 1, m.ID)
		assert.ErrorIs(t, err, domain.ErrCannotAcceptOwnMatch)
	})

	t.Run("outsider cannot accept", func(t *testing.T) {
		uc, _, _, _, m := setup(t)

		_, err := uc.AcceptMatch(ctx, 3, m.ID)
		assert.ErrorIs(t, err, domain.ErrNotMatchParticipant)
	})

	t.Run("missing match", func(t *testing.T) {
		uc, _, _, _, _ := setup(t)

		_, err := uc.AcceptMatch(ctx, 2, 999)
		assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	})
}

func TestRejectMatch(t *testing.T) {
	ctx := context.Background()
	uc, matchRepo, _, publisher := newTestUseCase()

	m, err := uc.CreateMatch(ctx, 1, &CreateMatchRequest{TargetUserID: 2})
	require.NoError(t, err)

	rejected, err := uc.RejectMatch(ctx, 2, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchRejected, rejected.Status)

	// No chat was built and the requester heard about it.
	assert.Nil(t, matchRepo.acceptedChat)
	assert.Contains(t, publisher.userEvents[1], "match_update")
	assert.Contains(t, publisher.userEvents[1], "match_response")

	// A rejected match is terminal.
	_, err = uc.AcceptMatch(ctx, 2, m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotPending)
}

func TestFindMatches(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newTestUseCase()

	t.Run("returns candidates", func(t *testing.T) {
		candidates, err := uc.FindMatches(ctx, 1)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, []string{"tennis"}, candidates[0].SharedSports)
	})

	t.Run("banned user cannot search", func(t *testing.T) {
		_, err := uc.FindMatches(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrUserBanned)
	})
}

package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type fakeEventRepo struct {
	repository.EventRepository
	nextID       int
	events       map[int]*domain.Event
	participants map[int]map[int]bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		nextID:       1,
		events:       map[int]*domain.Event{},
		participants: map[int]map[int]bool{},
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event
	r.participants[event.ID] = map[int]bool{}
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *event
	copied.ParticipantCount = len(r.participants[id])
	return &copied, nil
}

func (r *fakeEventRepo) AddParticipant(_ context.Context, eventID, userID int) error {
	r.participants[eventID][userID] = true
	return nil
}

func (r *fakeEventRepo) RemoveParticipant(_ context.Context, eventID, userID int) error {
	delete(r.participants[eventID], userID)
	return nil
}

func (r *fakeEventRepo) IsParticipant(_ context.Context, eventID, userID int) (bool, error) {
	return r.participants[eventID][userID], nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int) error {
	delete(r.events, id)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users  map[int]*domain.User
	points map[int]int
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) AddPoints(_ context.Context, id, delta int) error {
	r.points[id] += delta
	return nil
}

type fakeSportRepo struct {
	repository.SportRepository
}

func (r *fakeSportRepo) GetByID(_ context.Context, id int) (*domain.Sport, error) {
	if id != 1 {
		return nil, domain.ErrSportNotFound
	}
	return &domain.Sport{ID: 1, Name: "Tennis"}, nil
}

type fakeNotifier struct {
	sent []domain.NotificationType
}

func (n *fakeNotifier) Notify(_ context.Context, _ int, typ domain.NotificationType, _ string, _ *string) error {
	n.sent = append(n.sent, typ)
	return nil
}

func setup() (*EventUseCase, *fakeEventRepo, *fakeUserRepo, *fakeNotifier) {
	events := newFakeEventRepo()
	users := &fakeUserRepo{
		users: map[int]*domain.User{
			1: {ID: 1},
			2: {ID: 2},
			3: {ID: 3, IsBanned: true},
		},
		points: map[int]int{},
	}
	notifier := &fakeNotifier{}
	uc := NewEventUseCase(events, users, &fakeSportRepo{}, notifier)
	return uc, events, users, notifier
}

func createRequest(capacity int) *CreateEventRequest {
	return &CreateEventRequest{
		SportID:  1,
		Title:    "Sunday doubles",
		Location: "Court 4",
		StartsAt: time.Now().Add(48 * time.Hour),
		Capacity: capacity,
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("creator joins automatically", func(t *testing.T) {
		uc, events, _, _ := setup()

		event, err := uc.CreateEvent(ctx, 1, createRequest(4))
		require.NoError(t, err)
		assert.Equal(t, 1, event.ParticipantCount)

		joined, err := events.IsParticipant(ctx, event.ID, 1)
		require.NoError(t, err)
		assert.True(t, joined)
	})

	t.Run("unknown sport", func(t *testing.T) {
		uc, _, _, _ := setup()
		req := createRequest(4)
		req.SportID = 99

		_, err := uc.CreateEvent(ctx, 1, req)
		assert.ErrorIs(t, err, domain.ErrSportNotFound)
	})

	t.Run("banned creator", func(t *testing.T) {
		uc, _, _, _ := setup()
		_, err := uc.CreateEvent(ctx, 3, createRequest(4))
		assert.ErrorIs(t, err, domain.ErrUserBanned)
	})
}

func TestJoinEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("join awards points and notifies", func(t *testing.T) {
		uc, _, users, notifier := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(4))
		require.NoError(t, err)

		require.NoError(t, uc.JoinEvent(ctx, event.ID, 2))

		assert.Equal(t, joinPoints, users.points[2])
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, domain.NotificationPoints, notifier.sent[0])
	})

	t.Run("already joined", func(t *testing.T) {
		uc, _, _, _ := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(4))
		require.NoError(t, err)

		require.NoError(t, uc.JoinEvent(ctx, event.ID, 2))
		assert.ErrorIs(t, uc.JoinEvent(ctx, event.ID, 2), domain.ErrAlreadyJoined)
	})

	t.Run("full event", func(t *testing.T) {
		uc, _, _, _ := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(1))
		require.NoError(t, err)

		assert.ErrorIs(t, uc.JoinEvent(ctx, event.ID, 2), domain.ErrEventFull)
	})

	t.Run("zero capacity means unlimited", func(t *testing.T) {
		uc, _, _, _ := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(0))
		require.NoError(t, err)

		assert.NoError(t, uc.JoinEvent(ctx, event.ID, 2))
	})

	t.Run("banned user", func(t *testing.T) {
		uc, _, _, _ := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(4))
		require.NoError(t, err)

		assert.ErrorIs(t, uc.JoinEvent(ctx, event.ID, 3), domain.ErrUserBanned)
	})

	t.Run("unknown event", func(t *testing.T) {
		uc, _, _, _ := setup()
		assert.ErrorIs(t, uc.JoinEvent(ctx, 99, 2), domain.ErrEventNotFound)
	})
}

func TestLeaveEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("leave after join", func(t *testing.T) {
		uc, events, _, _ := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(4))
		require.NoError(t, err)

		require.NoError(t, uc.JoinEvent(ctx, event.ID, 2))
		require.NoError(t, uc.LeaveEvent(ctx, event.ID, 2))

		joined, err := events.IsParticipant(ctx, event.ID, 2)
		require.NoError(t, err)
		assert.False(t, joined)
	})

	t.Run("not a participant", func(t *testing.T) {
		uc, _, _, _ := setup()
		event, err := uc.CreateEvent(ctx, 1, createRequest(4))
		require.NoError(t, err)

		assert.ErrorIs(t, uc.LeaveEvent(ctx, event.ID, 2), domain.ErrNotJoined)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := setup()
	event, err := uc.CreateEvent(ctx, 1, createRequest(4))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteEvent(ctx, event.ID, 2), domain.ErrInvalidInput)
	require.NoError(t, uc.DeleteEvent(ctx, event.ID, 1))

	_, err = uc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

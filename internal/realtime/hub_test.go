package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalClient(hub *Hub, userID int) *Client {
	// No conn needed: these tests never run the pumps.
	return NewClient(hub, nil, nil, userID)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubLocalDelivery(t *testing.T) {
	hub := NewHub(nil)

	t.Run("personal room delivery", func(t *testing.T) {
		c := newLocalClient(hub, 1)
		hub.Join(c, UserRoom(1))
		defer hub.Disconnect(c)

		hub.PublishToUser(1, EventNotification, map[string]string{"content": "hi"})

		event := receive(t, c)
		assert.Equal(t, EventNotification, event.Event)
		assert.Equal(t, UserRoom(1), event.Room)
	})

	t.Run("chat room fan-out reaches every member", func(t *testing.T) {
		c1 := newLocalClient(hub, 1)
		c2 := newLocalClient(hub, 2)
		hub.Join(c1, ChatRoom(5))
		hub.Join(c2, ChatRoom(5))
		defer hub.Disconnect(c1)
		defer hub.Disconnect(c2)

		hub.PublishToChat(5, EventReceiveMessage, map[string]string{"content": "hello"})

		assert.Equal(t, EventReceiveMessage, receive(t, c1).Event)
		assert.Equal(t, EventReceiveMessage, receive(t, c2).Event)
	})

	t.Run("non-members hear nothing", func(t *testing.T) {
		member := newLocalClient(hub, 1)
		outsider := newLocalClient(hub, 2)
		hub.Join(member, ChatRoom(7))
		hub.Join(outsider, UserRoom(2))
		defer hub.Disconnect(member)
		defer hub.Disconnect(outsider)

		hub.PublishToChat(7, EventReceiveMessage, nil)

		receive(t, member)
		assert.Empty(t, outsider.send)
	})

	t.Run("leave stops delivery", func(t *testing.T) {
		c := newLocalClient(hub, 1)
		hub.Join(c, ChatRoom(9))
		hub.Leave(c, ChatRoom(9))

		hub.PublishToChat(9, EventReceiveMessage, nil)
		assert.Empty(t, c.send)
		assert.False(t, c.InRoom(ChatRoom(9)))
	})

	t.Run("slow client misses events instead of blocking", func(t *testing.T) {
		c := newLocalClient(hub, 1)
		hub.Join(c, ChatRoom(11))
		defer hub.Disconnect(c)

		done := make(chan struct{})
		go func() {
			defer close(done)
			// Overflow the bounded queue; delivery must stay non-blocking.
			for i := 0; i < sendQueueSize*2; i++ {
				hub.PublishToChat(11, EventReceiveMessage, map[string]int{"seq": i})
			}
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publisher blocked on a slow client")
		}
		assert.Len(t, c.send, sendQueueSize)
	})

	t.Run("disconnect empties all rooms", func(t *testing.T) {
		c := newLocalClient(hub, 1)
		hub.Join(c, UserRoom(1))
		hub.Join(c, ChatRoom(13))

		hub.Disconnect(c)
		assert.Zero(t, hub.RoomSize(UserRoom(1)))
		assert.Zero(t, hub.RoomSize(ChatRoom(13)))
	})
}

func TestHubRedisBridge(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	hub := NewHub(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := newLocalClient(hub, 1)
	hub.Join(c, ChatRoom(3))
	defer hub.Disconnect(c)

	// Give the subscription a moment to be established.
	require.Eventually(t, func() bool {
		hub.PublishToChat(3, EventReceiveMessage, map[string]string{"content": "via redis"})
		select {
		case data := <-c.send:
			var event Event
			require.NoError(t, json.Unmarshal(data, &event))
			assert.Equal(t, EventReceiveMessage, event.Event)
			assert.Equal(t, ChatRoom(3), event.Room)
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
}

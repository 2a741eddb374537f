package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// redisChannel carries every event between instances. Each instance
// subscribes once and fans incoming envelopes out to its local rooms.
const redisChannel = "realtime:events"

// envelope is the cross-instance wire format on the redis channel.
type envelope struct {
	Room    string          `json:"room"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Hub tracks connected clients and their room memberships. Delivery to a
// client is non-blocking: a client whose send queue is full misses the event
// instead of stalling the room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	// nil redis keeps delivery instance-local (tests, single-node runs).
	redis *redis.Client
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		redis: redisClient,
	}
}

// Run subscribes to the redis bridge and fans incoming events out to local
// rooms until ctx is cancelled. No-op without redis.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		<-ctx.Done()
		return
	}

	sub := h.redis.Subscribe(ctx, redisChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				continue
			}
			data, err := json.Marshal(Event{Event: env.Event, Room: env.Room, Payload: env.Payload})
			if err != nil {
				continue
			}
			h.deliverLocal(env.Room, data)
		}
	}
}

func (h *Hub) PublishToChat(chatID int, event string, payload interface{}) {
	h.publish(ChatRoom(chatID), event, payload)
}

func (h *Hub) PublishToUser(userID int, event string, payload interface{}) {
	h.publish(UserRoom(userID), event, payload)
}

func (h *Hub) publish(room, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}

	if h.redis != nil {
		env, err := json.Marshal(envelope{Room: room, Event: event, Payload: raw})
		if err != nil {
			return
		}
		// Delivery to local clients happens when the subscription loop
		// receives the envelope back.
		_ = h.redis.Publish(context.Background(), redisChannel, env).Err()
		return
	}

	data, err := json.Marshal(Event{Event: event, Room: room, Payload: json.RawMessage(raw)})
	if err != nil {
		return
	}
	h.deliverLocal(room, data)
}

// deliverLocal writes data to every client in the room, dropping it for
// clients whose queue is full.
func (h *Hub) deliverLocal(room string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// Join adds the client to a room.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.joinRoom(room)
}

// Leave removes the client from a room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	c.leaveRoom(room)
}

// Disconnect removes the client from every room it joined.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range c.roomList() {
		h.leaveLocked(c, room)
	}
}

// RoomSize reports how many clients a room currently holds.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

var _ Publisher = (*Hub)(nil)

// ErrNotInRoom is returned when a client acts on a room it never joined.
var ErrNotInRoom = fmt.Errorf("client is not in room")

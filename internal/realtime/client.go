package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// sendQueueSize bounds per-client buffering; a client that falls this far
	// behind starts missing events instead of stalling the hub.
	sendQueueSize = 32
)

// SessionHandler reacts to inbound client events. Implementations enforce
// authorization (chat membership) before the hub lets the client into a room.
type SessionHandler interface {
	OnJoinChat(ctx context.Context, c *Client, chatID int) error
	OnSendMessage(ctx context.Context, c *Client, chatID int, content string) error
}

// Client is one websocket connection owned by an authenticated user.
type Client struct {
	ID     string
	UserID int

	hub     *Hub
	conn    *websocket.Conn
	handler SessionHandler
	send    chan []byte

	mu    sync.Mutex
	rooms map[string]struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, handler SessionHandler, userID int) *Client {
	return &Client{
		ID:      uuid.NewString(),
		UserID:  userID,
		hub:     hub,
		conn:    conn,
		handler: handler,
		send:    make(chan []byte, sendQueueSize),
		rooms:   make(map[string]struct{}),
	}
}

// Serve joins the personal room and runs the read and write pumps. It returns
// when the connection closes.
func (c *Client) Serve(ctx context.Context) {
	c.hub.Join(c, UserRoom(c.UserID))

	go c.writePump()
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Disconnect(c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.sendError("invalid event")
			continue
		}
		c.handleEvent(ctx, &event)
	}
}

// inboundPayload covers every client-to-server event.
type inboundPayload struct {
	ChatID  int    `json:"chat_id"`
	Content string `json:"content"`
}

func (c *Client) handleEvent(ctx context.Context, event *Event) {
	var payload inboundPayload
	if event.Payload != nil {
		raw, err := json.Marshal(event.Payload)
		if err == nil {
			_ = json.Unmarshal(raw, &payload)
		}
	}

	switch event.Event {
	case EventJoinChat:
		if err := c.handler.OnJoinChat(ctx, c, payload.ChatID); err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Join(c, ChatRoom(payload.ChatID))

	case EventLeaveChat:
		c.hub.Leave(c, ChatRoom(payload.ChatID))

	case EventSendMessage:
		// Sending requires an explicit join; membership is re-checked by the
		// handler before anything is persisted.
		if !c.InRoom(ChatRoom(payload.ChatID)) {
			c.sendError(ErrNotInRoom.Error())
			return
		}
		if err := c.handler.OnSendMessage(ctx, c, payload.ChatID, payload.Content); err != nil {
			c.sendError(err.Error())
		}

	default:
		c.sendError("unknown event")
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(msg string) {
	data, err := json.Marshal(Event{Event: EventError, Payload: map[string]string{"message": msg}})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// InRoom reports whether the client has joined the room.
func (c *Client) InRoom(room string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.rooms[room]
	return ok
}

func (c *Client) joinRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room] = struct{}{}
}

func (c *Client) leaveRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room)
}

func (c *Client) roomList() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

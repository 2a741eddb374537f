package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/matchpoint-app/backend/internal/realtime"
	"github.com/matchpoint-app/backend/internal/usecase/chat"
	"github.com/matchpoint-app/backend/internal/usecase/user"
)

// WSHandler upgrades authenticated connections and bridges inbound websocket
// events to the chat usecase.
type WSHandler struct {
	hub         *realtime.Hub
	chatUseCase *chat.ChatUseCase
	userUseCase *user.UserUseCase
	upgrader    websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub, chatUseCase *chat.ChatUseCase, userUseCase *user.UserUseCase) *WSHandler {
	return &WSHandler{
		hub:         hub,
		chatUseCase: chatUseCase,
		userUseCase: userUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens via bearer token, not origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect upgrades the request and serves the connection until it drops.
// RequireAuth runs before this, so the personal room is trusted.
func (h *WSHandler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	uid := userID(c)
	_ = h.userUseCase.SetOnline(c.Request.Context(), uid)

	client := realtime.NewClient(h.hub, conn, h, uid)
	client.Serve(c.Request.Context())

	_ = h.userUseCase.SetOffline(context.Background(), uid)
}

// OnJoinChat gates chat room entry on membership.
func (h *WSHandler) OnJoinChat(ctx context.Context, c *realtime.Client, chatID int) error {
	return h.chatUseCase.EnsureMember(ctx, chatID, c.UserID)
}

// OnSendMessage persists and fans out a message sent over the socket.
func (h *WSHandler) OnSendMessage(ctx context.Context, c *realtime.Client, chatID int, content string) error {
	_, err := h.chatUseCase.SendMessage(ctx, chatID, c.UserID, content)
	return err
}

var _ realtime.SessionHandler = (*WSHandler)(nil)

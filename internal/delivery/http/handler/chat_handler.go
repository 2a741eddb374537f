package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

// ListChats returns the caller's chats with last messages.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatUseCase.ListChats(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// GetMessages returns the chat history in send order. Members only.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chatID, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid chat id"})
		return
	}

	// limit=0 returns the full history.
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.chatUseCase.GetChatMessages(c.Request.Context(), chatID, userID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage posts a TEXT message to a chat. Members only.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid chat id"})
		return
	}

	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), chatID, userID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetMembers returns the chat membership. Members only.
func (h *ChatHandler) GetMembers(c *gin.Context) {
	chatID, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid chat id"})
		return
	}

	members, err := h.chatUseCase.GetMembers(c.Request.Context(), chatID, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

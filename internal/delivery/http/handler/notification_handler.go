package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/notification"
)

type NotificationHandler struct {
	notificationUseCase *notification.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *notification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	notifications, err := h.notificationUseCase.List(c.Request.Context(), userID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification id"})
		return
	}

	if err := h.notificationUseCase.MarkRead(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "marked as read"})
}

// MarkAllRead marks all of the caller's notifications as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationUseCase.MarkAllRead(c.Request.Context(), userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "all marked as read"})
}

// CountUnread returns the caller's unread notification count.
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationUseCase.CountUnread(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/event"
)

type EventHandler struct {
	eventUseCase *event.EventUseCase
}

func NewEventHandler(eventUseCase *event.EventUseCase) *EventHandler {
	return &EventHandler{eventUseCase: eventUseCase}
}

// Create creates an event; the creator joins it automatically.
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	e, err := h.eventUseCase.CreateEvent(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// List lists events, optionally filtered by sport_id.
func (h *EventHandler) List(c *gin.Context) {
	sportID, _ := strconv.Atoi(c.DefaultQuery("sport_id", "0"))
	limit, offset := pagination(c)

	events, err := h.eventUseCase.ListEvents(c.Request.Context(), sportID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Get returns one event.
func (h *EventHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	e, err := h.eventUseCase.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Join adds the caller to an event.
func (h *EventHandler) Join(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventUseCase.JoinEvent(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "joined event"})
}

// Leave removes the caller from an event.
func (h *EventHandler) Leave(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventUseCase.LeaveEvent(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "left event"})
}

// Participants lists the event's participants.
func (h *EventHandler) Participants(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	participants, err := h.eventUseCase.ListParticipants(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// Delete removes an event. Creator only.
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventUseCase.DeleteEvent(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "event deleted"})
}

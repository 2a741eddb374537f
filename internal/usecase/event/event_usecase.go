package event

import (
	"context"
	"fmt"
	"time"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

// Notifier persists a notification and pushes it to the user's personal room.
type Notifier interface {
	Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error
}

// Joining an event awards activity points.
const joinPoints = 10

type EventUseCase struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	sportRepo repository.SportRepository
	notifier  Notifier
}

func NewEventUseCase(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	sportRepo repository.SportRepository,
	notifier Notifier,
) *EventUseCase {
	return &EventUseCase{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		sportRepo: sportRepo,
		notifier:  notifier,
	}
}

// CreateEventRequest represents a new event
type CreateEventRequest struct {
	SportID     int       `json:"sport_id" binding:"required"`
	Title       string    `json:"title" binding:"required,min=3,max=120"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Location    string    `json:"location" binding:"required,max=200"`
	StartsAt    time.Time `json:"starts_at" binding:"required,future"`
	Capacity    int       `json:"capacity" binding:"omitempty,min=0,max=1000"`
}

// CreateEvent creates an event; the creator joins automatically.
func (uc *EventUseCase) CreateEvent(ctx context.Context, creatorID int, req *CreateEventRequest) (*domain.Event, error) {
	creator, err := uc.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !creator.CanParticipate() {
		return nil, domain.ErrUserBanned
	}
	if _, err := uc.sportRepo.GetByID(ctx, req.SportID); err != nil {
		return nil, err
	}

	event := &domain.Event{
		CreatorID:   creatorID,
		SportID:     req.SportID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := uc.eventRepo.AddParticipant(ctx, event.ID, creatorID); err != nil {
		return nil, fmt.Errorf("failed to add creator as participant: %w", err)
	}
	event.ParticipantCount = 1

	return event, nil
}

// GetEvent returns one event with its participant count.
func (uc *EventUseCase) GetEvent(ctx context.Context, eventID int) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, eventID)
}

// ListEvents lists events, optionally filtered by sport (0 means all).
func (uc *EventUseCase) ListEvents(ctx context.Context, sportID int, limit, offset int) ([]*domain.Event, error) {
	return uc.eventRepo.List(ctx, sportID, limit, offset)
}

// JoinEvent adds the user to an event and awards points.
func (uc *EventUseCase) JoinEvent(ctx context.Context, eventID, userID int) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanParticipate() {
		return domain.ErrUserBanned
	}

	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.HasRoom() {
		return domain.ErrEventFull
	}

	joined, err := uc.eventRepo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check participation: %w", err)
	}
	if joined {
		return domain.ErrAlreadyJoined
	}

	if err := uc.eventRepo.AddParticipant(ctx, eventID, userID); err != nil {
		return err
	}
	if err := uc.userRepo.AddPoints(ctx, userID, joinPoints); err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}

	content := fmt.Sprintf("You earned %d points for joining %s", joinPoints, event.Title)
	if err := uc.notifier.Notify(ctx, userID, domain.NotificationPoints, content, nil); err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	return nil
}

// LeaveEvent removes the user from an event.
func (uc *EventUseCase) LeaveEvent(ctx context.Context, eventID, userID int) error {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}
	joined, err := uc.eventRepo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check participation: %w", err)
	}
	if !joined {
		return domain.ErrNotJoined
	}
	return uc.eventRepo.RemoveParticipant(ctx, eventID, userID)
}

// ListParticipants returns the event's participants.
func (uc *EventUseCase) ListParticipants(ctx context.Context, eventID int) ([]*domain.EventParticipant, error) {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return uc.eventRepo.ListParticipants(ctx, eventID)
}

// DeleteEvent removes an event. Only the creator may delete it.
func (uc *EventUseCase) DeleteEvent(ctx context.Context, eventID, userID int) error {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != userID {
		return domain.ErrInvalidInput
	}
	return uc.eventRepo.Delete(ctx, eventID)
}

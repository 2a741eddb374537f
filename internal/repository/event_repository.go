package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int) (*domain.Event, error)
	List(ctx context.Context, sportID int, limit, offset int) ([]*domain.Event, error)
	Delete(ctx context.Context, id int) error

	AddParticipant(ctx context.Context, eventID, userID int) error
	RemoveParticipant(ctx context.Context, eventID, userID int) error
	IsParticipant(ctx context.Context, eventID, userID int) (bool, error)
	ListParticipants(ctx context.Context, eventID int) ([]*domain.EventParticipant, error)
}

package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type SportRepository interface {
	Create(ctx context.Context, sport *domain.Sport) error
	GetByID(ctx context.Context, id int) (*domain.Sport, error)
	List(ctx context.Context) ([]*domain.Sport, error)

	AddUserSport(ctx context.Context, userID, sportID int) error
	RemoveUserSport(ctx context.Context, userID, sportID int) error
	GetUserSports(ctx context.Context, userID int) ([]*domain.Sport, error)
}

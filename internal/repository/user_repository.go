package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateOnlineStatus(ctx context.Context, id int, isOnline bool) error
	SetBanned(ctx context.Context, id int, banned bool) error
	AddPoints(ctx context.Context, id int, delta int) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
}

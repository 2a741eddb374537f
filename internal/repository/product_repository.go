package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Product, error)

	UpsertCartItem(ctx context.Context, userID, productID, quantity int) error
	RemoveCartItem(ctx context.Context, userID, productID int) error
	GetCart(ctx context.Context, userID int) ([]*domain.CartItem, error)
	ClearCart(ctx context.Context, userID int) error

	AddFavorite(ctx context.Context, userID, productID int) error
	RemoveFavorite(ctx context.Context, userID, productID int) error
	ListFavorites(ctx context.Context, userID int) ([]*domain.Product, error)

	CreateReview(ctx context.Context, r *domain.Review) error
	ListReviews(ctx context.Context, productID int) ([]*domain.Review, error)
	GetUserReview(ctx context.Context, productID, userID int) (*domain.Review, error)
}

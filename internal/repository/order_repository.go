package repository

import (
	"context"

	"github.com/matchpoint-app/backend/internal/domain"
)

type OrderRepository interface {
	// CreateWithItems inserts the order and its items and decrements product
	// stock in a single transaction. Returns domain.ErrInsufficientStock when
	// any product cannot cover its quantity.
	CreateWithItems(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus, paymentRef *string) error
	// ReleaseStock returns the order's reserved quantities to product stock.
	// Used when payment fails after CreateWithItems reserved the items.
	ReleaseStock(ctx context.Context, orderID int) error
	Count(ctx context.Context) (int, error)
}

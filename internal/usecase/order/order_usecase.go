package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/infrastructure/payments"
	"github.com/matchpoint-app/backend/internal/repository"
)

// Notifier persists a notification and pushes it to the user's personal room.
type Notifier interface {
	Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error
}

// Charger creates a payment charge with the external provider.
type Charger interface {
	CreateCharge(ctx context.Context, req *payments.ChargeRequest) (*payments.Charge, error)
}

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	charger     Charger
	notifier    Notifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	charger Charger,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		charger:     charger,
		notifier:    notifier,
	}
}

// Checkout turns the user's cart into an order and charges it. Stock is
// reserved before the charge; a declined payment releases the reservation and
// leaves the cart intact so the user can retry.
func (uc *OrderUseCase) Checkout(ctx context.Context, userID int) (*domain.Order, error) {
	cart, err := uc.productRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		UserID: userID,
		Status: domain.OrderPending,
	}
	for _, item := range cart {
		if item.Title == nil || item.PriceCents == nil {
			// Product deleted since it was carted.
			return nil, domain.ErrProductNotFound
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:  item.ProductID,
			Title:      *item.Title,
			PriceCents: *item.PriceCents,
			Quantity:   item.Quantity,
		})
		order.TotalCents += *item.PriceCents * item.Quantity
	}

	if err := uc.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	charge, err := uc.charger.CreateCharge(ctx, &payments.ChargeRequest{
		AmountCents:    order.TotalCents,
		Currency:       "EUR",
		Reference:      fmt.Sprintf("order-%d", order.ID),
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		// Provider unreachable: release the reservation, keep the order as a
		// FAILED record.
		uc.failOrder(ctx, order)
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}

	if charge.Status != payments.StatusSucceeded {
		uc.failOrder(ctx, order)
		return order, domain.ErrPaymentDeclined
	}

	ref := charge.ID
	if err := uc.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderPaid, &ref); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	order.Status = domain.OrderPaid
	order.PaymentRef = &ref

	if err := uc.productRepo.ClearCart(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	actionURL := fmt.Sprintf("/orders/%d", order.ID)
	content := fmt.Sprintf("Your order #%d was paid", order.ID)
	if err := uc.notifier.Notify(ctx, userID, domain.NotificationOrder, content, &actionURL); err != nil {
		return nil, fmt.Errorf("failed to notify: %w", err)
	}

	return order, nil
}

func (uc *OrderUseCase) failOrder(ctx context.Context, order *domain.Order) {
	_ = uc.orderRepo.ReleaseStock(ctx, order.ID)
	_ = uc.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderFailed, nil)
	order.Status = domain.OrderFailed
}

// GetOrder returns one order. Only the owner may read it.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID, userID int) (*domain.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (uc *OrderUseCase) ListOrders(ctx context.Context, userID int, limit, offset int) ([]*domain.Order, error) {
	return uc.orderRepo.ListForUser(ctx, userID, limit, offset)
}

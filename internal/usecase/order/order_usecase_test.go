package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/infrastructure/payments"
	"github.com/matchpoint-app/backend/internal/repository"
)

type fakeOrderRepo struct {
	repository.OrderRepository

	orders        map[int]*domain.Order
	nextID        int
	releasedStock []int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int]*domain.Order), nextID: 1}
}

func (f *fakeOrderRepo) CreateWithItems(ctx context.Context, order *domain.Order) error {
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus, paymentRef *string) error {
	o, ok := f.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	if paymentRef != nil {
		o.PaymentRef = paymentRef
	}
	return nil
}

func (f *fakeOrderRepo) ReleaseStock(ctx context.Context, orderID int) error {
	f.releasedStock = append(f.releasedStock, orderID)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

type fakeProductRepo struct {
	repository.ProductRepository

	cart    []*domain.CartItem
	cleared bool
}

func (f *fakeProductRepo) GetCart(ctx context.Context, userID int) ([]*domain.CartItem, error) {
	return f.cart, nil
}

func (f *fakeProductRepo) ClearCart(ctx context.Context, userID int) error {
	f.cleared = true
	f.cart = nil
	return nil
}

type fakeCharger struct {
	status string
	err    error
	calls  []*payments.ChargeRequest
}

func (f *fakeCharger) CreateCharge(ctx context.Context, req *payments.ChargeRequest) (*payments.Charge, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &payments.Charge{ID: "ch_test", Status: f.status}, nil
}

type fakeNotifier struct {
	notified []int
}

func (f *fakeNotifier) Notify(ctx context.Context, userID int, typ domain.NotificationType, content string, actionURL *string) error {
	f.notified = append(f.notified, userID)
	return nil
}

func cartFixture() []*domain.CartItem {
	title1, title2 := "Racket", "Balls"
	price1, price2 := 5000, 700
	return []*domain.CartItem{
		{UserID: 1, ProductID: 10, Quantity: 1, Title: &title1, PriceCents: &price1},
		{UserID: 1, ProductID: 11, Quantity: 3, Title: &title2, PriceCents: &price2},
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		uc := NewOrderUseCase(newFakeOrderRepo(), &fakeProductRepo{}, &fakeCharger{}, &fakeNotifier{})

		_, err := uc.Checkout(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("successful payment pays the order and clears the cart", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		productRepo := &fakeProductRepo{cart: cartFixture()}
		charger := &fakeCharger{status: payments.StatusSucceeded}
		notifier := &fakeNotifier{}
		uc := NewOrderUseCase(orderRepo, productRepo, charger, notifier)

		o, err := uc.Checkout(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPaid, o.Status)
		assert.Equal(t, 5000+3*700, o.TotalCents)
		require.NotNil(t, o.PaymentRef)
		assert.Equal(t, "ch_test", *o.PaymentRef)
		assert.True(t, productRepo.cleared)
		assert.Equal(t, []int{1}, notifier.notified)

		require.Len(t, charger.calls, 1)
		assert.Equal(t, o.TotalCents, charger.calls[0].AmountCents)
		assert.NotEmpty(t, charger.calls[0].IdempotencyKey)
	})

	t.Run("declined payment fails the order and keeps the cart", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		productRepo := &fakeProductRepo{cart: cartFixture()}
		charger := &fakeCharger{status: payments.StatusDeclined}
		uc := NewOrderUseCase(orderRepo, productRepo, charger, &fakeNotifier{})

		o, err := uc.Checkout(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
		require.NotNil(t, o)
		assert.Equal(t, domain.OrderFailed, o.Status)

		// Reserved stock is released and the cart stays for a retry.
		assert.Equal(t, []int{o.ID}, orderRepo.releasedStock)
		assert.False(t, productRepo.cleared)
		assert.Len(t, productRepo.cart, 2)
	})

	t.Run("provider outage fails the order", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		productRepo := &fakeProductRepo{cart: cartFixture()}
		charger := &fakeCharger{err: errors.New("connection refused")}
		uc := NewOrderUseCase(orderRepo, productRepo, charger, &fakeNotifier{})

		_, err := uc.Checkout(ctx, 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrPaymentDeclined)
		assert.Len(t, orderRepo.releasedStock, 1)
		assert.False(t, productRepo.cleared)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	orderRepo := newFakeOrderRepo()
	orderRepo.orders[1] = &domain.Order{ID: 1, UserID: 7}
	orderRepo.nextID = 2
	uc := NewOrderUseCase(orderRepo, &fakeProductRepo{}, &fakeCharger{}, &fakeNotifier{})

	t.Run("owner reads own order", func(t *testing.T) {
		o, err := uc.GetOrder(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, o.ID)
	})

	t.Run("other users see not found", func(t *testing.T) {
		_, err := uc.GetOrder(ctx, 1, 8)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

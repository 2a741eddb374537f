package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderFailed    OrderStatus = "FAILED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID         int         `json:"id" db:"id"`
	UserID     int         `json:"user_id" db:"user_id"`
	Status     OrderStatus `json:"status" db:"status"`
	TotalCents int         `json:"total_cents" db:"total_cents"`
	PaymentRef *string     `json:"payment_ref" db:"payment_ref"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID         int    `json:"id" db:"id"`
	OrderID    int    `json:"order_id" db:"order_id"`
	ProductID  int    `json:"product_id" db:"product_id"`
	Title      string `json:"title" db:"title"`
	PriceCents int    `json:"price_cents" db:"price_cents"`
	Quantity   int    `json:"quantity" db:"quantity"`
}

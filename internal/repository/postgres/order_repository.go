package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, status, total_cents) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		order.UserID, order.Status, order.TotalCents).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		// Decrement stock, guarded so it never goes negative.
		result, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			item.Quantity, item.ProductID)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrInsufficientStock
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, title, price_cents, quantity)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.OrderID, item.ProductID, item.Title, item.PriceCents, item.Quantity).
			Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	err = r.db.SelectContext(ctx, &order.Items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListForUser(ctx context.Context, userID int, limit, offset int) ([]*domain.Order, error) {
	var orders []*domain.Order
	query := `
		SELECT * FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &orders, query, userID, limit, offset)
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus, paymentRef *string) error {
	query := `
		UPDATE orders
		SET status = $1, payment_ref = COALESCE($2, payment_ref), updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, paymentRef, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ReleaseStock(ctx context.Context, orderID int) error {
	query := `
		UPDATE products p
		SET stock = p.stock + oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id
	`
	_, err := r.db.ExecContext(ctx, query, orderID)
	return err
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`)
	return count, err
}

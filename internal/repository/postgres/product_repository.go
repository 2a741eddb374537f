package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/repository"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (seller_id, sport_id, title, description, price_cents, image_url, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		p.SellerID, p.SportID, p.Title, p.Description, p.PriceCents, p.ImageURL, p.Stock,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET title = $1, description = $2, price_cents = $3, image_url = $4,
		    stock = $5, sport_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		p.Title, p.Description, p.PriceCents, p.ImageURL, p.Stock, p.SportID, p.ID,
	).Scan(&p.UpdatedAt)
}

func (r *productRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Product, error) {
	var products []*domain.Product

	query := `SELECT * FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if sportID, ok := filters["sport_id"].(int); ok && sportID > 0 {
		query += fmt.Sprintf(" AND sport_id = $%d", argCount)
		args = append(args, sportID)
		argCount++
	}

	if sellerID, ok := filters["seller_id"].(int); ok && sellerID > 0 {
		query += fmt.Sprintf(" AND seller_id = $%d", argCount)
		args = append(args, sellerID)
		argCount++
	}

	if search, ok := filters["search"].(string); ok && search != "" {
		query += fmt.Sprintf(" AND title ILIKE $%d", argCount)
		args = append(args, "%"+search+"%")
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	err := r.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *productRepository) UpsertCartItem(ctx context.Context, userID, productID, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = $3
	`
	_, err := r.db.ExecContext(ctx, query, userID, productID, quantity)
	return err
}

func (r *productRepository) RemoveCartItem(ctx context.Context, userID, productID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *productRepository) GetCart(ctx context.Context, userID int) ([]*domain.CartItem, error) {
	var items []*domain.CartItem
	query := `
		SELECT ci.user_id, ci.product_id, ci.quantity, ci.added_at,
		       p.title, p.price_cents
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at
	`
	err := r.db.SelectContext(ctx, &items, query, userID)
	return items, err
}

func (r *productRepository) ClearCart(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *productRepository) AddFavorite(ctx context.Context, userID, productID int) error {
	query := `
		INSERT INTO favorites (user_id, product_id) VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, productID)
	return err
}

func (r *productRepository) RemoveFavorite(ctx context.Context, userID, productID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *productRepository) ListFavorites(ctx context.Context, userID int) ([]*domain.Product, error) {
	var products []*domain.Product
	query := `
		SELECT p.* FROM products p
		JOIN favorites f ON f.product_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.added_at DESC
	`
	err := r.db.SelectContext(ctx, &products, query, userID)
	return products, err
}

func (r *productRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, review.ProductID, review.UserID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrReviewExists
	}
	return err
}

func (r *productRepository) ListReviews(ctx context.Context, productID int) ([]*domain.Review, error) {
	var reviews []*domain.Review
	query := `SELECT * FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &reviews, query, productID)
	return reviews, err
}

func (r *productRepository) GetUserReview(ctx context.Context, productID, userID int) (*domain.Review, error) {
	var review domain.Review
	query := `SELECT * FROM reviews WHERE product_id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &review, query, productID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

package domain

import "time"

type Product struct {
	ID          int       `json:"id" db:"id"`
	SellerID    int       `json:"seller_id" db:"seller_id"`
	SportID     *int      `json:"sport_id" db:"sport_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	PriceCents  int       `json:"price_cents" db:"price_cents"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CartItem struct {
	UserID    int       `json:"user_id" db:"user_id"`
	ProductID int       `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`

	// joined in for cart views
	Title      *string `json:"title,omitempty" db:"title"`
	PriceCents *int    `json:"price_cents,omitempty" db:"price_cents"`
}

type Favorite struct {
	UserID    int       `json:"user_id" db:"user_id"`
	ProductID int       `json:"product_id" db:"product_id"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
}

type Review struct {
	ID        int       `json:"id" db:"id"`
	ProductID int       `json:"product_id" db:"product_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

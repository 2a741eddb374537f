package shop

import (
	"context"
	"fmt"

	"github.com/matchpoint-app/backend/internal/domain"
	"github.com/matchpoint-app/backend/internal/infrastructure/media"
	"github.com/matchpoint-app/backend/internal/repository"
)

type ShopUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	media       *media.Service
}

func NewShopUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	mediaService *media.Service,
) *ShopUseCase {
	return &ShopUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		media:       mediaService,
	}
}

// CreateProductRequest represents a new listing
type CreateProductRequest struct {
	SportID     *int    `json:"sport_id"`
	Title       string  `json:"title" binding:"required,min=3,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	PriceCents  int     `json:"price_cents" binding:"required,min=1"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	Stock       int     `json:"stock" binding:"required,min=1"`
}

// UpdateProductRequest represents a listing update
type UpdateProductRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	PriceCents  *int    `json:"price_cents" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
}

// CartItemRequest represents a cart mutation
type CartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1,max=99"`
}

// CreateReviewRequest represents a product review
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// ProductImageResponse carries a presigned PUT URL for a product image
type ProductImageResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

// CreateProduct lists a product for sale.
func (uc *ShopUseCase) CreateProduct(ctx context.Context, sellerID int, req *CreateProductRequest) (*domain.Product, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !seller.CanParticipate() {
		return nil, domain.ErrUserBanned
	}

	p := &domain.Product{
		SellerID:    sellerID,
		SportID:     req.SportID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// GetProduct returns one product.
func (uc *ShopUseCase) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProducts lists products. Supported filters: sport_id, seller_id, search.
func (uc *ShopUseCase) ListProducts(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Product, error) {
	return uc.productRepo.List(ctx, filters, limit, offset)
}

// UpdateProduct applies the non-nil fields of req. Only the seller may update.
func (uc *ShopUseCase) UpdateProduct(ctx context.Context, productID, sellerID int, req *UpdateProductRequest) (*domain.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, domain.ErrNotProductSeller
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.PriceCents != nil {
		p.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a listing. Only the seller may delete.
func (uc *ShopUseCase) DeleteProduct(ctx context.Context, productID, sellerID int) error {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID != sellerID {
		return domain.ErrNotProductSeller
	}
	return uc.productRepo.Delete(ctx, productID)
}

// PresignProductImage returns a presigned PUT URL for a product image.
func (uc *ShopUseCase) PresignProductImage(ctx context.Context, sellerID int, fileName, contentType string) (*ProductImageResponse, error) {
	url, key, err := uc.media.PresignUpload(ctx, fmt.Sprintf("products/%d", sellerID), fileName, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign product image: %w", err)
	}
	return &ProductImageResponse{UploadURL: url, Key: key}, nil
}

// AddToCart sets the quantity of a product in the user's cart.
func (uc *ShopUseCase) AddToCart(ctx context.Context, userID int, req *CartItemRequest) error {
	p, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if p.Stock < req.Quantity {
		return domain.ErrInsufficientStock
	}
	return uc.productRepo.UpsertCartItem(ctx, userID, req.ProductID, req.Quantity)
}

// RemoveFromCart removes a product from the user's cart.
func (uc *ShopUseCase) RemoveFromCart(ctx context.Context, userID, productID int) error {
	return uc.productRepo.RemoveCartItem(ctx, userID, productID)
}

// GetCart returns the user's cart with product details joined in.
func (uc *ShopUseCase) GetCart(ctx context.Context, userID int) ([]*domain.CartItem, error) {
	return uc.productRepo.GetCart(ctx, userID)
}

// AddFavorite bookmarks a product. Idempotent.
func (uc *ShopUseCase) AddFavorite(ctx context.Context, userID, productID int) error {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return uc.productRepo.AddFavorite(ctx, userID, productID)
}

// RemoveFavorite removes a bookmark.
func (uc *ShopUseCase) RemoveFavorite(ctx context.Context, userID, productID int) error {
	return uc.productRepo.RemoveFavorite(ctx, userID, productID)
}

// ListFavorites returns the user's bookmarked products.
func (uc *ShopUseCase) ListFavorites(ctx context.Context, userID int) ([]*domain.Product, error) {
	return uc.productRepo.ListFavorites(ctx, userID)
}

// CreateReview adds a review. One review per user per product.
func (uc *ShopUseCase) CreateReview(ctx context.Context, productID, userID int, req *CreateReviewRequest) (*domain.Review, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := uc.productRepo.GetUserReview(ctx, productID, userID); err == nil {
		return nil, domain.ErrReviewExists
	} else if err != domain.ErrReviewNotFound {
		return nil, fmt.Errorf("failed to check review: %w", err)
	}

	r := &domain.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := uc.productRepo.CreateReview(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return r, nil
}

// ListReviews returns a product's reviews.
func (uc *ShopUseCase) ListReviews(ctx context.Context, productID int) ([]*domain.Review, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return uc.productRepo.ListReviews(ctx, productID)
}

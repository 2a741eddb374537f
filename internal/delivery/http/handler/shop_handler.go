package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/shop"
)

type ShopHandler struct {
	shopUseCase *shop.ShopUseCase
}

func NewShopHandler(shopUseCase *shop.ShopUseCase) *ShopHandler {
	return &ShopHandler{shopUseCase: shopUseCase}
}

// CreateProduct lists a product for sale.
func (h *ShopHandler) CreateProduct(c *gin.Context) {
	var req shop.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.shopUseCase.CreateProduct(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListProducts lists products. Filters: sport_id, seller_id, search.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	filters := make(map[string]interface{})
	if sportID, err := strconv.Atoi(c.Query("sport_id")); err == nil {
		filters["sport_id"] = sportID
	}
	if sellerID, err := strconv.Atoi(c.Query("seller_id")); err == nil {
		filters["seller_id"] = sellerID
	}
	if search := c.Query("search"); search != "" {
		filters["search"] = search
	}
	limit, offset := pagination(c)

	products, err := h.shopUseCase.ListProducts(c.Request.Context(), filters, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product.
func (h *ShopHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	p, err := h.shopUseCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct applies a partial update. Seller only.
func (h *ShopHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	var req shop.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.shopUseCase.UpdateProduct(c.Request.Context(), id, userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct removes a listing. Seller only.
func (h *ShopHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.shopUseCase.DeleteProduct(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

// ProductImageRequest asks for a presigned product image upload URL
type ProductImageRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignImage returns a presigned PUT URL for a product image.
func (h *ShopHandler) PresignImage(c *gin.Context) {
	var req ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.shopUseCase.PresignProductImage(c.Request.Context(), userID(c), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddToCart sets the quantity of a product in the caller's cart.
func (h *ShopHandler) AddToCart(c *gin.Context) {
	var req shop.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.shopUseCase.AddToCart(c.Request.Context(), userID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "added to cart"})
}

// RemoveFromCart removes a product from the caller's cart.
func (h *ShopHandler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.shopUseCase.RemoveFromCart(c.Request.Context(), userID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "removed from cart"})
}

// GetCart returns the caller's cart.
func (h *ShopHandler) GetCart(c *gin.Context) {
	cart, err := h.shopUseCase.GetCart(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddFavorite bookmarks a product.
func (h *ShopHandler) AddFavorite(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.shopUseCase.AddFavorite(c.Request.Context(), userID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "added to favorites"})
}

// RemoveFavorite removes a bookmark.
func (h *ShopHandler) RemoveFavorite(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.shopUseCase.RemoveFavorite(c.Request.Context(), userID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "removed from favorites"})
}

// ListFavorites returns the caller's bookmarked products.
func (h *ShopHandler) ListFavorites(c *gin.Context) {
	products, err := h.shopUseCase.ListFavorites(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateReview adds a review to a product.
func (h *ShopHandler) CreateReview(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	var req shop.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	review, err := h.shopUseCase.CreateReview(c.Request.Context(), productID, userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviews returns a product's reviews.
func (h *ShopHandler) ListReviews(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
		return
	}

	reviews, err := h.shopUseCase.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matchpoint-app/backend/internal/usecase/order"
)

type OrderHandler struct {
	orderUseCase *order.OrderUseCase
}

func NewOrderHandler(orderUseCase *order.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUseCase: orderUseCase}
}

// Checkout turns the caller's cart into a paid order
// @Summary Checkout
// @Description Create an order from the cart and charge it
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	o, err := h.orderUseCase.Checkout(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Get returns one of the caller's orders.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order id"})
		return
	}

	o, err := h.orderUseCase.GetOrder(c.Request.Context(), id, userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.orderUseCase.ListOrders(c.Request.Context(), userID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

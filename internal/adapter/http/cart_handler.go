package http

import (
	"net/http"
	"strconv"

	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/http/middleware"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts *usecase.CartService
}

func NewCartHandler(carts *usecase.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addToCartReq struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type updateCartItemReq struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cart, err := h.carts.Get(c.Request.Context(), user.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": viewCart(cart)})
}

// POST /cart/add
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.AddItem(c.Request.Context(), user.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to cart successfully",
		"cart":    viewCart(cart),
	})
}

// PATCH /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.UpdateItem(c.Request.Context(), user.UserID, itemID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"cart":    viewCart(cart),
	})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	user := middleware.CurrentUser(c)
	cart, err := h.carts.RemoveItem(c.Request.Context(), user.UserID, itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"cart":    viewCart(cart),
	})
}

// DELETE /cart/clear
func (h *CartHandler) Clear(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cart, err := h.carts.Clear(c.Request.Context(), user.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"cart":    viewCart(cart),
	})
}

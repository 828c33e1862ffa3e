package http

import (
	"net/http"
	"strconv"

	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/cache"
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/http/middleware"
	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type OrderHandler struct {
	orders *usecase.OrderService
	cache  *cache.Redis
}

func NewOrderHandler(orders *usecase.OrderService, rc *cache.Redis) *OrderHandler {
	return &OrderHandler{orders: orders, cache: rc}
}

type createOrderReq struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=500"`
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func pageParams(c *gin.Context) usecase.ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return usecase.ListParams{Page: page, PageSize: defaultPageSize}
}

// POST /orders/create
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.PlaceOrder(c.Request.Context(), usecase.PlaceOrderInput{
		UserID:          user.UserID,
		UserName:        user.Name,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   viewOrder(order),
	})
}

// GET /orders — read-through per user and page. PlaceOrder and
// UpdateStatus invalidate these keys by pattern, so a stale page never
// survives a write.
func (h *OrderHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	params := pageParams(c)
	key := cache.UserOrdersPageKey(user.UserID, params.Page)

	var cached []orderView
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, gin.H{"orders": cached})
		return
	}

	orders, err := h.orders.ListForUser(c.Request.Context(), user.UserID, params)
	if err != nil {
		writeError(c, err)
		return
	}
	views := viewOrders(orders)
	h.cache.SetJSON(c.Request.Context(), key, views)
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

// GET /orders/:id
func (h *OrderHandler) GetMine(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	user := middleware.CurrentUser(c)
	order, err := h.orders.GetForUser(c.Request.Context(), orderID, user.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": viewOrder(order)})
}

// GET /admin/orders
func (h *OrderHandler) AdminList(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), pageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": viewOrders(orders)})
}

// GET /admin/orders/:id
func (h *OrderHandler) AdminGet(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	order, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": viewOrder(order)})
}

// PATCH /admin/orders/:id/status
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated to " + req.Status,
		"order":   viewOrder(order),
	})
}

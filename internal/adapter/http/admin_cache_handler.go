package http

import (
	"net/http"

	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/cache"
	"github.com/gin-gonic/gin"
)

// CacheHandler exposes the admin cache maintenance endpoints.
type CacheHandler struct {
	cache *cache.Redis
}

func NewCacheHandler(rc *cache.Redis) *CacheHandler {
	return &CacheHandler{cache: rc}
}

// GET /admin/cache/stats
func (h *CacheHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cache_stats":   h.cache.Stats(c.Request.Context()),
		"cache_backend": "redis",
	})
}

// POST /admin/cache/clear
func (h *CacheHandler) Clear(c *gin.Context) {
	if err := h.cache.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All cache cleared successfully"})
}

type invalidateReq struct {
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}

// POST /admin/cache/invalidate-products
func (h *CacheHandler) InvalidateProducts(c *gin.Context) {
	var req invalidateReq
	_ = c.ShouldBindJSON(&req) // body optional: no id means lists only
	h.cache.InvalidateProduct(c.Request.Context(), req.ProductID)
	c.JSON(http.StatusOK, gin.H{"message": "Product cache invalidated successfully"})
}

// POST /admin/cache/invalidate-categories
func (h *CacheHandler) InvalidateCategories(c *gin.Context) {
	var req invalidateReq
	_ = c.ShouldBindJSON(&req)
	h.cache.InvalidateCategory(c.Request.Context(), req.CategoryID)
	c.JSON(http.StatusOK, gin.H{"message": "Category cache invalidated successfully"})
}

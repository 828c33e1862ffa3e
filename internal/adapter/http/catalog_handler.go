package http

import (
	"net/http"
	"strconv"

	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/cache"
	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CatalogHandler serves the public read paths through the response
// cache and the admin write paths that invalidate it.
type CatalogHandler struct {
	catalog *usecase.CatalogService
	cache   *cache.Redis
}

func NewCatalogHandler(catalog *usecase.CatalogService, rc *cache.Redis) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cache: rc}
}

const cacheControl = "public, max-age=3600"

func setCacheHeaders(c *gin.Context, hit bool) {
	c.Header("Cache-Control", cacheControl)
	if hit {
		c.Header("X-Cache-Status", "HIT")
	} else {
		c.Header("X-Cache-Status", "MISS")
	}
}

// GET /products (public)
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := pageParams(c)
	key := cache.ProductListKey(params.Page)

	var cached []productView
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		setCacheHeaders(c, true)
		c.JSON(http.StatusOK, gin.H{"products": cached})
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	views := viewProducts(products)
	h.cache.SetJSON(c.Request.Context(), key, views)
	setCacheHeaders(c, false)
	c.JSON(http.StatusOK, gin.H{"products": views})
}

// GET /products/:id (public)
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	key := cache.ProductDetailKey(id)

	var cached productView
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		setCacheHeaders(c, true)
		c.JSON(http.StatusOK, gin.H{"product": cached})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	view := viewProduct(product)
	h.cache.SetJSON(c.Request.Context(), key, view)
	setCacheHeaders(c, false)
	c.JSON(http.StatusOK, gin.H{"product": view})
}

// GET /categories (public)
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	params := pageParams(c)
	key := cache.CategoryListKey(params.Page)

	var cached []categoryView
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		setCacheHeaders(c, true)
		c.JSON(http.StatusOK, gin.H{"categories": cached})
		return
	}

	cats, err := h.catalog.ListCategories(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	views := viewCategories(cats)
	h.cache.SetJSON(c.Request.Context(), key, views)
	setCacheHeaders(c, false)
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

type productReq struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Stock       int    `json:"stock" binding:"gte=0"`
	CategoryID  int64  `json:"category_id" binding:"required"`
}

func (r productReq) toEntity() (*entity.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return nil, usecase.ErrInvalidInput
	}
	return &entity.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
	}, nil
}

// POST /admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	product, err := req.toEntity()
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": viewProduct(product)})
}

// PUT /admin/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	product, err := req.toEntity()
	if err != nil {
		writeError(c, err)
		return
	}
	product.ID = id
	if err := h.catalog.UpdateProduct(c.Request.Context(), product); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": viewProduct(product)})
}

// DELETE /admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if err := h.catalog.DeactivateProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}

type stockUpdateReq struct {
	Stock *int `json:"stock" binding:"required,gte=0"`
}

// PATCH /admin/products/:id/stock
func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	var req stockUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	product, err := h.catalog.SetStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Stock updated successfully",
		"product": viewProduct(product),
	})
}

type categoryReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// POST /admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	cat := &entity.Category{Name: req.Name, Description: req.Description}
	if err := h.catalog.CreateCategory(c.Request.Context(), cat); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": viewCategory(cat)})
}

// PUT /admin/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	cat := &entity.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.catalog.UpdateCategory(c.Request.Context(), cat); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": viewCategory(cat)})
}

// DELETE /admin/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

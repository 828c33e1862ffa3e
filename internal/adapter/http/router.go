package http

import (
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/http/middleware"
	"github.com/Dpak2002/go-ecommerce-api/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Cart    *CartHandler
	Order   *OrderHandler
	Catalog *CatalogHandler
	Cache   *CacheHandler
	WS      *WSHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public catalog reads (cached).
	r.GET("/products", h.Catalog.ListProducts)
	r.GET("/products/:id", h.Catalog.GetProduct)
	r.GET("/categories", h.Catalog.ListCategories)

	// Customer cart and orders.
	customer := r.Group("/", authz.Require(middleware.RoleCustomer))
	{
		customer.GET("/cart", h.Cart.Get)
		customer.POST("/cart/add", h.Cart.Add)
		customer.PATCH("/cart/items/:id", h.Cart.UpdateItem)
		customer.DELETE("/cart/items/:id", h.Cart.RemoveItem)
		customer.DELETE("/cart/clear", h.Cart.Clear)

		customer.POST("/orders/create", h.Order.Create)
		customer.GET("/orders", h.Order.ListMine)
		customer.GET("/orders/:id", h.Order.GetMine)
	}

	// Admin management.
	admin := r.Group("/admin", authz.Require(middleware.RoleAdmin))
	{
		admin.GET("/orders", h.Order.AdminList)
		admin.GET("/orders/:id", h.Order.AdminGet)
		admin.PATCH("/orders/:id/status", h.Order.AdminUpdateStatus)

		admin.POST("/products", h.Catalog.CreateProduct)
		admin.PUT("/products/:id", h.Catalog.UpdateProduct)
		admin.DELETE("/products/:id", h.Catalog.DeleteProduct)
		admin.PATCH("/products/:id/stock", h.Catalog.UpdateStock)
		admin.POST("/categories", h.Catalog.CreateCategory)
		admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
		admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

		admin.GET("/cache/stats", h.Cache.Stats)
		admin.POST("/cache/clear", h.Cache.Clear)
		admin.POST("/cache/invalidate-products", h.Cache.InvalidateProducts)
		admin.POST("/cache/invalidate-categories", h.Cache.InvalidateCategories)
	}

	// Notification channels. Any authenticated user may open the
	// customer channel; the admin channel refuses non-admins.
	r.GET("/ws/orders", authz.Require(), h.WS.Customer)
	r.GET("/ws/admin/orders", authz.Require(middleware.RoleAdmin), h.WS.Admin)

	return r
}

package http

import (
	"time"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
)

// Wire snapshots. Prices travel as fixed-point strings.

type cartItemView struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
}

type cartView struct {
	ID         int64          `json:"id"`
	Items      []cartItemView `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice string         `json:"total_price"`
}

func viewCart(c *entity.Cart) cartView {
	v := cartView{
		ID:         c.ID,
		Items:      make([]cartItemView, 0, len(c.Items)),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().StringFixed(2),
	}
	for _, it := range c.Items {
		v.Items = append(v.Items, cartItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			TotalPrice:  it.TotalPrice().StringFixed(2),
		})
	}
	return v
}

type orderItemView struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	TotalPrice  string `json:"total_price"`
}

type orderView struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Status          string          `json:"status"`
	TotalPrice      string          `json:"total_price"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []orderItemView `json:"items,omitempty"`
	TotalItems      int             `json:"total_items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func viewOrder(o *entity.Order) orderView {
	v := orderView{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalPrice:      o.TotalPrice.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		TotalItems:      o.TotalItems(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price.StringFixed(2),
			TotalPrice:  it.TotalPrice().StringFixed(2),
		})
	}
	return v
}

func viewOrders(orders []entity.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for i := range orders {
		out = append(out, viewOrder(&orders[i]))
	}
	return out
}

type productView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  int64     `json:"category_id"`
	InStock     bool      `json:"in_stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewProduct(p *entity.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		InStock:     p.InStock(),
		IsActive:    p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func viewProducts(products []entity.Product) []productView {
	out := make([]productView, 0, len(products))
	for i := range products {
		out = append(out, viewProduct(&products[i]))
	}
	return out
}

type categoryView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewCategory(c *entity.Category) categoryView {
	return categoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func viewCategories(cats []entity.Category) []categoryView {
	out := make([]categoryView, 0, len(cats))
	for i := range cats {
		out = append(out, viewCategory(&cats[i]))
	}
	return out
}

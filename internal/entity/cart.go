package entity

import "github.com/shopspring/decimal"

// Cart is the per-user mutable pre-purchase selection. One cart per
// user; lines are unique per product.
type Cart struct {
	ID     int64
	UserID int64
	Items  []CartItem
}

// CartItem carries the product fields the cart logic needs (price,
// stock, active flag) as read together with the line itself, so totals
// and stock checks always see the current product state.
type CartItem struct {
	ID          int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Stock       int
	Active      bool
	Quantity    int
}

func (i CartItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (c *Cart) Empty() bool { return len(c.Items) == 0 }

// TotalPrice is always derived from the current lines, never stored.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.TotalPrice())
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Item returns the line with the given id, or nil.
func (c *Cart) Item(itemID int64) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}

// ItemForProduct returns the line referencing productID, or nil.
func (c *Cart) ItemForProduct(productID int64) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

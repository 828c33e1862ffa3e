package usecase

import (
	"context"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
)

// ListParams is the shared pagination shape for list queries.
// Page is 1-based; PageSize defaults to 10 at the HTTP layer.
type ListParams struct {
	Page     int
	PageSize int
}

func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

type ProductStore interface {
	// GetByID returns ErrNotFound for missing or inactive products.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, p ListParams) ([]entity.Product, error)
	Create(ctx context.Context, prod *entity.Product) error
	Update(ctx context.Context, prod *entity.Product) error
	// Deactivate soft-deletes: products referenced by historical orders
	// are never hard-deleted.
	Deactivate(ctx context.Context, id int64) error
	SetStock(ctx context.Context, id int64, stock int) error
	// TryDecrement atomically decrements stock only if stock >= qty.
	// A false return is a definitive rejection, not a transient error.
	TryDecrement(ctx context.Context, id int64, qty int) (bool, error)
}

type CategoryStore interface {
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context, p ListParams) ([]entity.Category, error)
	Create(ctx context.Context, cat *entity.Category) error
	Update(ctx context.Context, cat *entity.Category) error
	Delete(ctx context.Context, id int64) error
}

type CartStore interface {
	// GetOrCreate returns the user's cart, creating it on first access.
	GetOrCreate(ctx context.Context, userID int64) (*entity.Cart, error)
	InsertItem(ctx context.Context, cartID, productID int64, qty int) error
	UpdateItemQty(ctx context.Context, cartID, itemID int64, qty int) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
}

type OrderStore interface {
	// PlaceOrder persists the order and its items, decrements stock per
	// line and clears the cart, all within a single transaction. Any
	// failed decrement rolls the whole thing back and surfaces as
	// *InsufficientStockError. On success o.ID and timestamps are set.
	PlaceOrder(ctx context.Context, o *entity.Order, cartID int64) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	ListByUser(ctx context.Context, userID int64, p ListParams) ([]entity.Order, error)
	List(ctx context.Context, p ListParams) ([]entity.Order, error)
	// UpdateStatusIf is a guarded transition: the row moves to
	// newStatus only if it is still in oldStatus. false means a
	// concurrent writer got there first (or the order vanished).
	UpdateStatusIf(ctx context.Context, id int64, oldStatus, newStatus entity.OrderStatus) (bool, error)
}

// CacheInvalidator deletes cached read results after writes. Calls are
// synchronous and required on the write path; implementations log
// backend failures instead of returning them, since a broken cache must
// never revert a committed write.
type CacheInvalidator interface {
	InvalidateProduct(ctx context.Context, id int64)
	InvalidateCategory(ctx context.Context, id int64)
	InvalidateOrder(ctx context.Context, orderID, userID int64)
}

// EventSink receives domain events after the triggering state change
// has committed. Enqueue must never block and may drop.
type EventSink interface {
	Enqueue(ev Event)
}

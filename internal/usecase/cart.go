package usecase

import (
	"context"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
)

// CartService owns all cart mutations. Stock checks read the product
// state loaded together with the cart, so a line can never be written
// above the stock observed in the same request.
type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, creating it lazily on first access.
func (s *CartService) Get(ctx context.Context, userID int64) (*entity.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem creates a line or increments an existing one. A brand-new
// line asking for more than is in stock is rejected; an increment that
// overshoots is clamped to the available stock. The asymmetry is
// intentional and matched by strict rejection at order time.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, qty int) (*entity.Cart, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock() {
		return nil, ErrOutOfStock
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if line := cart.ItemForProduct(productID); line != nil {
		newQty := line.Quantity + qty
		if newQty > product.Stock {
			newQty = product.Stock
		}
		if err := s.carts.UpdateItemQty(ctx, cart.ID, line.ID, newQty); err != nil {
			return nil, err
		}
		return s.carts.GetOrCreate(ctx, userID)
	}

	if qty > product.Stock {
		return nil, &StockLimitError{Available: product.Stock}
	}
	if err := s.carts.InsertItem(ctx, cart.ID, productID, qty); err != nil {
		return nil, err
	}
	return s.carts.GetOrCreate(ctx, userID)
}

// UpdateItem sets a line's quantity, rejecting anything above current stock.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID int64, qty int) (*entity.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	line := cart.Item(itemID)
	if line == nil {
		return nil, ErrNotFound
	}
	if qty > line.Stock {
		return nil, &StockLimitError{Available: line.Stock}
	}
	if err := s.carts.UpdateItemQty(ctx, cart.ID, itemID, qty); err != nil {
		return nil, err
	}
	return s.carts.GetOrCreate(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (*entity.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.carts.GetOrCreate(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) (*entity.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.carts.GetOrCreate(ctx, userID)
}

package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrCartEmpty         = errors.New("Cart is empty")
	ErrOutOfStock        = errors.New("Product is out of stock")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InsufficientStockError rejects an order whose line exceeds current
// stock. Raised both by the pre-check and by the transactional
// decrement when a concurrent order won the race.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d", e.ProductName, e.Available)
}

// StockLimitError rejects a cart mutation asking for more than is in
// stock. Cart increments clamp instead (see CartService.AddItem).
type StockLimitError struct {
	Available int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("Only %d items available in stock", e.Available)
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
)

// OrderService converts carts into orders and drives the order status
// lifecycle. All multi-step mutation happens inside the store's
// transaction; cache invalidation and event fan-out run strictly after
// commit and never fail the operation.
type OrderService struct {
	orders OrderStore
	carts  CartStore
	cache  CacheInvalidator
	events EventSink
}

func NewOrderService(orders OrderStore, carts CartStore, cache CacheInvalidator, events EventSink) *OrderService {
	return &OrderService{orders: orders, carts: carts, cache: cache, events: events}
}

type PlaceOrderInput struct {
	UserID          int64
	UserName        string
	ShippingAddress string
}

// PlaceOrder creates an immutable order from the user's cart.
//
// The per-line stock pre-check runs over every line before any
// mutation, so the common insufficient-stock case rejects without
// touching state. It is an optimization only: the transactional
// decrement inside the store is what actually guarantees stock never
// goes negative when two orders race on the same product.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*entity.Order, error) {
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, fmt.Errorf("shipping address: %w", ErrInvalidInput)
	}

	cart, err := s.carts.GetOrCreate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, ErrCartEmpty
	}

	for _, line := range cart.Items {
		if line.Quantity > line.Stock {
			return nil, &InsufficientStockError{ProductName: line.ProductName, Available: line.Stock}
		}
	}

	order := &entity.Order{
		UserID:          in.UserID,
		Status:          entity.StatusPending,
		TotalPrice:      cart.TotalPrice(),
		ShippingAddress: in.ShippingAddress,
	}
	for _, line := range cart.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}

	if err := s.orders.PlaceOrder(ctx, order, cart.ID); err != nil {
		return nil, err
	}

	// Post-commit only. Invalidation is required; events are best-effort.
	s.cache.InvalidateOrder(ctx, order.ID, in.UserID)

	now := time.Now().UTC()
	s.events.Enqueue(Event{
		Type:      EventOrderCreated,
		Channel:   UserChannel(in.UserID),
		OrderID:   order.ID,
		Message:   fmt.Sprintf("Your order #%d has been created successfully!", order.ID),
		Timestamp: now,
	})
	s.events.Enqueue(Event{
		Type:       EventNewOrder,
		Channel:    AdminChannel,
		OrderID:    order.ID,
		UserID:     in.UserID,
		UserName:   in.UserName,
		TotalPrice: order.TotalPrice.StringFixed(2),
		Message:    fmt.Sprintf("New order #%d created by %s", order.ID, in.UserName),
		Timestamp:  now,
	})

	return order, nil
}

// UpdateStatus applies an admin status transition. Terminal states
// reject every outgoing transition; the guarded store update keeps a
// concurrent admin from double-applying a move.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, newStatus entity.OrderStatus) (*entity.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if !oldStatus.CanTransition(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, newStatus)
	}

	ok, err := s.orders.UpdateStatusIf(ctx, orderID, oldStatus, newStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Raced with another transition; the status we validated
		// against is gone.
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, newStatus)
	}
	order.Status = newStatus

	s.cache.InvalidateOrder(ctx, order.ID, order.UserID)

	now := time.Now().UTC()
	s.events.Enqueue(Event{
		Type:      EventOrderUpdate,
		Channel:   UserChannel(order.UserID),
		OrderID:   order.ID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		Message:   fmt.Sprintf("Your order #%d status has been updated to %s", order.ID, newStatus),
		Timestamp: now,
	})
	s.events.Enqueue(Event{
		Type:      EventOrderStatusChanged,
		Channel:   AdminChannel,
		OrderID:   order.ID,
		UserID:    order.UserID,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		Message:   fmt.Sprintf("Order #%d status changed from %s to %s", order.ID, oldStatus, newStatus),
		Timestamp: now,
	})

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*entity.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// GetForUser returns the order only if it belongs to userID.
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID int64) (*entity.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64, p ListParams) ([]entity.Order, error) {
	return s.orders.ListByUser(ctx, userID, p)
}

func (s *OrderService) List(ctx context.Context, p ListParams) ([]entity.Order, error) {
	return s.orders.List(ctx, p)
}

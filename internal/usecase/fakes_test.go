package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

// In-memory fakes for the usecase ports. They mimic the relational
// adapters closely enough to exercise the workflow invariants: the
// product fake guards stock with a mutex so decrements are atomic, and
// the order fake rolls back applied decrements when a line fails.

type memProducts struct {
	mu sync.Mutex
	m  map[int64]*entity.Product
}

func newMemProducts(products ...*entity.Product) *memProducts {
	s := &memProducts{m: make(map[int64]*entity.Product)}
	for _, p := range products {
		s.m[p.ID] = p
	}
	return s
}

func (s *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok || !p.Active {
		return nil, usecase.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memProducts) List(_ context.Context, _ usecase.ListParams) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Product
	for _, p := range s.m {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memProducts) Create(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = int64(len(s.m) + 1)
	p.Active = true
	cp := *p
	s.m[p.ID] = &cp
	return nil
}

func (s *memProducts) Update(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; !ok {
		return usecase.ErrNotFound
	}
	cp := *p
	cp.Active = s.m[p.ID].Active
	s.m[p.ID] = &cp
	return nil
}

func (s *memProducts) Deactivate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return usecase.ErrNotFound
	}
	p.Active = false
	return nil
}

func (s *memProducts) SetStock(_ context.Context, id int64, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return usecase.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (s *memProducts) TryDecrement(_ context.Context, id int64, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (s *memProducts) refund(id int64, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.m[id]; ok {
		p.Stock += qty
	}
}

func (s *memProducts) stock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.m[id]; ok {
		return p.Stock
	}
	return 0
}

type memCarts struct {
	mu       sync.Mutex
	products *memProducts
	byUser   map[int64]*entity.Cart
	nextCart int64
	nextItem int64
}

func newMemCarts(products *memProducts) *memCarts {
	return &memCarts{products: products, byUser: make(map[int64]*entity.Cart)}
}

func (s *memCarts) GetOrCreate(_ context.Context, userID int64) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.byUser[userID]
	if !ok {
		s.nextCart++
		cart = &entity.Cart{ID: s.nextCart, UserID: userID}
		s.byUser[userID] = cart
	}
	// Re-join lines against current product state, like the SQL adapter.
	out := &entity.Cart{ID: cart.ID, UserID: userID}
	for _, it := range cart.Items {
		s.products.mu.Lock()
		if p, ok := s.products.m[it.ProductID]; ok {
			it.ProductName = p.Name
			it.UnitPrice = p.Price
			it.Stock = p.Stock
			it.Active = p.Active
		}
		s.products.mu.Unlock()
		out.Items = append(out.Items, it)
	}
	return out, nil
}

func (s *memCarts) findByID(cartID int64) *entity.Cart {
	for _, c := range s.byUser {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (s *memCarts) InsertItem(_ context.Context, cartID, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.findByID(cartID)
	if cart == nil {
		return usecase.ErrNotFound
	}
	s.nextItem++
	cart.Items = append(cart.Items, entity.CartItem{ID: s.nextItem, ProductID: productID, Quantity: qty})
	return nil
}

func (s *memCarts) UpdateItemQty(_ context.Context, cartID, itemID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.findByID(cartID)
	if cart == nil {
		return usecase.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = qty
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (s *memCarts) DeleteItem(_ context.Context, cartID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.findByID(cartID)
	if cart == nil {
		return usecase.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return usecase.ErrNotFound
}

func (s *memCarts) Clear(_ context.Context, cartID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart := s.findByID(cartID); cart != nil {
		cart.Items = nil
	}
	return nil
}

type memOrders struct {
	mu       sync.Mutex
	products *memProducts
	carts    *memCarts
	orders   map[int64]*entity.Order
	nextID   int64
}

func newMemOrders(products *memProducts, carts *memCarts) *memOrders {
	return &memOrders{products: products, carts: carts, orders: make(map[int64]*entity.Order)}
}

// PlaceOrder mirrors the SQL adapter's transaction: decrement per line,
// undo everything on a failed line, clear the cart, persist.
func (s *memOrders) PlaceOrder(ctx context.Context, o *entity.Order, cartID int64) error {
	var applied []entity.OrderItem
	for _, it := range o.Items {
		ok, err := s.products.TryDecrement(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			for _, a := range applied {
				s.products.refund(a.ProductID, a.Quantity)
			}
			return &usecase.InsufficientStockError{
				ProductName: it.ProductName,
				Available:   s.products.stock(it.ProductID),
			}
		}
		applied = append(applied, it)
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *memOrders) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memOrders) ListByUser(_ context.Context, userID int64, _ usecase.ListParams) ([]entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrders) List(_ context.Context, _ usecase.ListParams) ([]entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrders) UpdateStatusIf(_ context.Context, id int64, oldStatus, newStatus entity.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != oldStatus {
		return false, nil
	}
	o.Status = newStatus
	return true, nil
}

type memSink struct {
	mu     sync.Mutex
	events []usecase.Event
}

func (s *memSink) Enqueue(ev usecase.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *memSink) all() []usecase.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]usecase.Event(nil), s.events...)
}

func (s *memSink) byChannel(channel string) []usecase.Event {
	var out []usecase.Event
	for _, ev := range s.all() {
		if ev.Channel == channel {
			out = append(out, ev)
		}
	}
	return out
}

type memInvalidator struct {
	mu     sync.Mutex
	orders []int64
}

func (s *memInvalidator) InvalidateProduct(context.Context, int64)  {}
func (s *memInvalidator) InvalidateCategory(context.Context, int64) {}

func (s *memInvalidator) InvalidateOrder(_ context.Context, orderID, _ int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, orderID)
}

var (
	_ usecase.ProductStore     = (*memProducts)(nil)
	_ usecase.CartStore        = (*memCarts)(nil)
	_ usecase.OrderStore       = (*memOrders)(nil)
	_ usecase.EventSink        = (*memSink)(nil)
	_ usecase.CacheInvalidator = (*memInvalidator)(nil)
)

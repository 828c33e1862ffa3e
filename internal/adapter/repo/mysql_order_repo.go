package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

var _ usecase.OrderStore = (*MySQLOrderRepo)(nil)

// PlaceOrder runs the whole order-creation mutation in one transaction:
// order row, item rows with frozen prices, one ledger decrement per
// line, cart clear. A decrement that finds too little stock (a race
// the usecase pre-check missed) rolls everything back and reports the
// losing product.
func (r *MySQLOrderRepo) PlaceOrder(ctx context.Context, o *entity.Order, cartID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (user_id, status, total_price, shipping_address, created_at, updated_at)
VALUES (?, ?, ?, ?, NOW(), NOW())`,
		o.UserID, o.Status, o.TotalPrice, o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID, _ = res.LastInsertId()

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		ires, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price, created_at)
VALUES (?, ?, ?, ?, NOW())`,
			o.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		item.ID, _ = ires.LastInsertId()

		ok, err := tryDecrement(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			available := 0
			_ = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, item.ProductID).Scan(&available)
			return &usecase.InsufficientStockError{ProductName: item.ProductName, Available: available}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, status, total_price, shipping_address, created_at, updated_at
FROM orders WHERE id = ?`, id)

	var o entity.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *MySQLOrderRepo) loadItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *MySQLOrderRepo) listQuery(ctx context.Context, where string, args ...any) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, status, total_price, shipping_address, created_at, updated_at
FROM orders `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID int64, p usecase.ListParams) ([]entity.Order, error) {
	return r.listQuery(ctx, `WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		userID, p.PageSize, p.Offset())
}

func (r *MySQLOrderRepo) List(ctx context.Context, p usecase.ListParams) ([]entity.Order, error) {
	return r.listQuery(ctx, `ORDER BY created_at DESC LIMIT ? OFFSET ?`, p.PageSize, p.Offset())
}

// UpdateStatusIf moves the order to newStatus only while it still sits
// in oldStatus. rows == 0 means not found or a concurrent transition.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id int64, oldStatus, newStatus entity.OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW()
WHERE id = ? AND status = ?`, newStatus, id, oldStatus)
	if err != nil {
		return false, fmt.Errorf("update status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

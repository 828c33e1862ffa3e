package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

var _ usecase.CartStore = (*MySQLCartRepo)(nil)

// GetOrCreate loads the user's cart with its lines joined against the
// current product rows, creating the cart on first access. carts has a
// unique index on user_id, so a racing first access falls back to a
// re-select.
func (r *MySQLCartRepo) GetOrCreate(ctx context.Context, userID int64) (*entity.Cart, error) {
	cart := &entity.Cart{UserID: userID}

	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&cart.ID)
	if errors.Is(err, sql.ErrNoRows) {
		res, insErr := r.db.ExecContext(ctx, `
INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, NOW(), NOW())`, userID)
		if insErr != nil {
			// Lost the creation race; the row exists now.
			selErr := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&cart.ID)
			if selErr != nil {
				return nil, fmt.Errorf("create cart: %w", insErr)
			}
		} else {
			cart.ID, _ = res.LastInsertId()
		}
	} else if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	items, err := r.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

func (r *MySQLCartRepo) loadItems(ctx context.Context, cartID int64) ([]entity.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT ci.id, ci.product_id, p.name, p.price, p.stock, p.is_active, ci.quantity
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = ?`, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	defer rows.Close()

	var items []entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Stock, &it.Active, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *MySQLCartRepo) InsertItem(ctx context.Context, cartID, productID int64, qty int) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, NOW(), NOW())`, cartID, productID, qty)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *MySQLCartRepo) UpdateItemQty(ctx context.Context, cartID, itemID int64, qty int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE cart_items SET quantity = ?, updated_at = NOW()
WHERE id = ? AND cart_id = ?`, qty, itemID, cartID)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return requireRow(res)
}

// DeleteItem is scoped to the cart so a user cannot remove lines from
// someone else's cart by guessing ids.
func (r *MySQLCartRepo) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return requireRow(res)
}

func (r *MySQLCartRepo) Clear(ctx context.Context, cartID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

// execer is satisfied by both *sql.DB and *sql.Tx so the conditional
// stock decrement can run standalone or inside the order transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

var _ usecase.ProductStore = (*MySQLProductRepo)(nil)

const productColumns = `id, name, description, price, stock, category_id, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+productColumns+` FROM products WHERE id = ? AND is_active = 1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *MySQLProductRepo) List(ctx context.Context, params usecase.ListParams) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+productColumns+` FROM products
WHERE is_active = 1
ORDER BY created_at DESC
LIMIT ? OFFSET ?`, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (name, description, price, stock, category_id, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, 1, NOW(), NOW())`,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	p.Active = true
	return nil
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET name = ?, description = ?, price = ?, stock = ?, category_id = ?, updated_at = NOW()
WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res)
}

// Deactivate soft-deletes. Rows stay in place for historical order items.
func (r *MySQLProductRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET is_active = 0, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return requireRow(res)
}

func (r *MySQLProductRepo) SetStock(ctx context.Context, id int64, stock int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET stock = ?, updated_at = NOW() WHERE id = ?`, stock, id)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return requireRow(res)
}

// TryDecrement is the inventory ledger's single serialization point: a
// conditional UPDATE that only matches while stock covers qty, so two
// racing orders can never drive stock negative.
func (r *MySQLProductRepo) TryDecrement(ctx context.Context, id int64, qty int) (bool, error) {
	return tryDecrement(ctx, r.db, id, qty)
}

func tryDecrement(ctx context.Context, ex execer, id int64, qty int) (bool, error) {
	res, err := ex.ExecContext(ctx, `
UPDATE products
SET stock = stock - ?, updated_at = NOW()
WHERE id = ? AND stock >= ?`, qty, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

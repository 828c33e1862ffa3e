package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

type MySQLCategoryRepo struct{ db *sql.DB }

func NewMySQLCategoryRepo(db *sql.DB) *MySQLCategoryRepo { return &MySQLCategoryRepo{db: db} }

var _ usecase.CategoryStore = (*MySQLCategoryRepo)(nil)

func (r *MySQLCategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at, updated_at FROM categories WHERE id = ?`, id)
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *MySQLCategoryRepo) List(ctx context.Context, params usecase.ListParams) ([]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, created_at, updated_at FROM categories
ORDER BY name
LIMIT ? OFFSET ?`, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MySQLCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO categories (name, description, created_at, updated_at)
VALUES (?, ?, NOW(), NOW())`, c.Name, c.Description)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

func (r *MySQLCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE categories SET name = ?, description = ?, updated_at = NOW() WHERE id = ?`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

func (r *MySQLCategoryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

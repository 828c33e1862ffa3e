package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  int64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) InStock() bool { return p.Stock > 0 }

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

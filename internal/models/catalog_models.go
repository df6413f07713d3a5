package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frame is a catalog product shared by every shop.
type Frame struct {
	ID          int64           `json:"id" db:"id"`
	ProductID   string          `json:"product_id" db:"product_id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// LensType is a lens variant applied to a frame at sale time.
type LensType struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier" db:"price_multiplier"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

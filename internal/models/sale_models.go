package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only sale record. Only Billed ever changes after insert.
type Sale struct {
	ID         int64           `json:"id" db:"id"`
	ShopID     int64           `json:"shop_id" db:"shop_id"`
	FrameID    int64           `json:"frame_id" db:"frame_id"`
	LensTypeID int64           `json:"lens_type_id" db:"lens_type_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	SaleDate   time.Time       `json:"sale_date" db:"sale_date"`
	Billed     bool            `json:"billed" db:"billed"`
}

// SaleView is a sale joined with frame and lens type names for display.
type SaleView struct {
	ID         int64           `json:"id"`
	FrameID    int64           `json:"frame_id"`
	ProductID  string          `json:"product_id"`
	FrameName  string          `json:"frame_name"`
	LensTypeID int64           `json:"lens_type_id"`
	LensType   string          `json:"lens_type"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SaleDate   time.Time       `json:"sale_date"`
	Billed     bool            `json:"billed"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEntry is the quantity on hand of one frame in one shop.
// Quantity may be negative when sales outran recorded stock.
type InventoryEntry struct {
	ID        int64     `json:"id" db:"id"`
	ShopID    int64     `json:"shop_id" db:"shop_id"`
	FrameID   int64     `json:"frame_id" db:"frame_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryItem is an inventory entry joined with its frame.
type InventoryItem struct {
	ID          int64           `json:"id"`
	FrameID     int64           `json:"frame_id"`
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

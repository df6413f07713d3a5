package models

import "github.com/shopspring/decimal"

// ShopRevenue is one row of the distributor dashboard.
type ShopRevenue struct {
	ShopID     int64           `json:"shop_id"`
	Name       string          `json:"name"`
	SalesCount int             `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DistributorSummary holds the headline figures across all shops.
type DistributorSummary struct {
	TotalShops   int             `json:"total_shops"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Shops        []ShopRevenue   `json:"shops"`
}

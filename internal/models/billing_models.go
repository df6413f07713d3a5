package models

import "github.com/shopspring/decimal"

// BillSummary aggregates one shop's sales over a calendar month.
type BillSummary struct {
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	BilledAmount   decimal.Decimal `json:"billedAmount"`
	UnbilledAmount decimal.Decimal `json:"unbilledAmount"`
	ItemCount      int             `json:"itemCount"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
}

// MonthlyBill is the sales of a month, oldest first, with their summary.
type MonthlyBill struct {
	Sales   []SaleView  `json:"sales"`
	Summary BillSummary `json:"summary"`
}

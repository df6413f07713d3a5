package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/pricing"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// MarkBilledRequest lists the sales to flag as billed.
type MarkBilledRequest struct {
	SalesIDs []int64 `json:"sales_ids" binding:"required"`
}

// BillingService derives monthly bills from the sales ledger.
type BillingService interface {
	GetMonthlyBill(ctx context.Context, shopID int64, month, year int) (*models.MonthlyBill, error)
	// MarkBilled returns the number of sales that changed from unbilled to billed.
	MarkBilled(ctx context.Context, shopID int64, saleIDs []int64) (int64, error)
}

type billingService struct {
	saleRepo repositories.SaleRepository
	shopRepo repositories.ShopRepository
	db       *sql.DB
	location *time.Location
}

// NewBillingService creates a new instance of BillingService.
// Month windows are computed in loc; nil means UTC.
func NewBillingService(sr repositories.SaleRepository, shr repositories.ShopRepository, db *sql.DB, loc *time.Location) BillingService {
	if loc == nil {
		loc = time.UTC
	}
	return &billingService{saleRepo: sr, shopRepo: shr, db: db, location: loc}
}

// MonthWindow returns [start, next) for the given calendar month in loc.
// time.Date normalises month 13, so December rolls over to January of year+1.
func MonthWindow(year, month int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	next := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, loc)
	return start, next
}

func (s *billingService) GetMonthlyBill(ctx context.Context, shopID int64, month, year int) (*models.MonthlyBill, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrValidation, month)
	}
	if year < 1 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", ErrValidation, year)
	}
	if err := requireShop(ctx, s.shopRepo, nil, shopID); err != nil {
		return nil, err
	}

	start, next := MonthWindow(year, month, s.location)
	sales, err := s.saleRepo.GetSalesByShopInRange(ctx, shopID, start, next)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales for shop %d in %04d-%02d: %w", shopID, year, month, err)
	}

	summary := models.BillSummary{
		TotalAmount:    decimal.Zero,
		BilledAmount:   decimal.Zero,
		UnbilledAmount: decimal.Zero,
		Month:          month,
		Year:           year,
	}
	for _, sale := range sales {
		summary.TotalAmount = summary.TotalAmount.Add(sale.TotalPrice)
		if sale.Billed {
			summary.BilledAmount = summary.BilledAmount.Add(sale.TotalPrice)
		} else {
			summary.UnbilledAmount = summary.UnbilledAmount.Add(sale.TotalPrice)
		}
		summary.ItemCount += sale.Quantity
	}
	summary.TotalAmount = pricing.RoundCents(summary.TotalAmount)
	summary.BilledAmount = pricing.RoundCents(summary.BilledAmount)
	summary.UnbilledAmount = pricing.RoundCents(summary.UnbilledAmount)

	return &models.MonthlyBill{Sales: sales, Summary: summary}, nil
}

func (s *billingService) MarkBilled(ctx context.Context, shopID int64, saleIDs []int64) (int64, error) {
	if len(saleIDs) == 0 {
		return 0, fmt.Errorf("%w: sales_ids must not be empty", ErrValidation)
	}
	for _, id := range saleIDs {
		if id <= 0 {
			return 0, fmt.Errorf("%w: invalid sale id %d", ErrValidation, id)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireShop(ctx, s.shopRepo, tx, shopID); err != nil {
		return 0, err
	}
	updated, err := s.saleRepo.MarkBilled(ctx, tx, shopID, saleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to mark sales billed for shop %d: %w", shopID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit billing transaction: %w", err)
	}

	utils.LogInfo("Sales marked billed", map[string]interface{}{
		"shop_id": shopID, "requested": len(saleIDs), "updated": updated,
	})
	return updated, nil
}

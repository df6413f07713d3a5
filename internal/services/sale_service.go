package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/pricing"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// RecordSaleRequest is used for recording a sale against a shop.
// Quantity defaults to 1. UnitPrice defaults to the frame's current price and
// TotalPrice to UnitPrice × lens multiplier × Quantity; supplied amounts are
// stored as given, rounded to cents.
type RecordSaleRequest struct {
	FrameID        int64            `json:"frame_id" binding:"required"`
	LensTypeID     int64            `json:"lens_type_id" binding:"required"`
	Quantity       *int             `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	TotalPrice     *decimal.Decimal `json:"total_price"`
	IdempotencyKey string           `json:"-"`
}

// IdempotencyStore remembers request keys so a retried sale is not recorded twice.
type IdempotencyStore interface {
	// Reserve returns false when the key was already reserved.
	Reserve(ctx context.Context, key string) (bool, error)
	// Release forgets a key whose request failed, so it can be retried.
	Release(ctx context.Context, key string) error
}

// SaleService is the append-only sales ledger.
type SaleService interface {
	RecordSale(ctx context.Context, shopID int64, req RecordSaleRequest) (*models.Sale, error)
	ListSales(ctx context.Context, shopID int64) ([]models.SaleView, error)
}

type saleService struct {
	saleRepo    repositories.SaleRepository
	shopRepo    repositories.ShopRepository
	catalogRepo repositories.CatalogRepository
	inventory   InventoryService
	idempotency IdempotencyStore
	db          *sql.DB
}

// NewSaleService creates a new instance of SaleService. idem may be nil.
func NewSaleService(
	sr repositories.SaleRepository,
	shr repositories.ShopRepository,
	cr repositories.CatalogRepository,
	inv InventoryService,
	idem IdempotencyStore,
	db *sql.DB,
) SaleService {
	return &saleService{
		saleRepo:    sr,
		shopRepo:    shr,
		catalogRepo: cr,
		inventory:   inv,
		idempotency: idem,
		db:          db,
	}
}

func (s *saleService) RecordSale(ctx context.Context, shopID int64, req RecordSaleRequest) (*models.Sale, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if quantity > math.MaxInt32 {
		return nil, fmt.Errorf("%w: quantity is too large", ErrValidation)
	}
	if req.UnitPrice != nil {
		if err := pricing.CheckAmount(*req.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: unit_price: %v", ErrValidation, err)
		}
	}
	if req.TotalPrice != nil {
		if err := pricing.CheckAmount(*req.TotalPrice); err != nil {
			return nil, fmt.Errorf("%w: total_price: %v", ErrValidation, err)
		}
	}

	if req.IdempotencyKey != "" && s.idempotency != nil {
		key := fmt.Sprintf("sale:%d:%s", shopID, req.IdempotencyKey)
		ok, err := s.idempotency.Reserve(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: idempotency key %q", ErrDuplicateRequest, req.IdempotencyKey)
		}
		sale, err := s.recordSale(ctx, shopID, quantity, req)
		if err != nil {
			if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
				utils.LogError(releaseErr, "Failed to release idempotency key", map[string]interface{}{"key": key})
			}
			return nil, err
		}
		return sale, nil
	}
	return s.recordSale(ctx, shopID, quantity, req)
}

// recordSale inserts the sale and debits inventory in one transaction.
func (s *saleService) recordSale(ctx context.Context, shopID int64, quantity int, req RecordSaleRequest) (*models.Sale, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireShop(ctx, s.shopRepo, tx, shopID); err != nil {
		return nil, err
	}
	frame, err := s.catalogRepo.GetFrameByID(ctx, tx, req.FrameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrFrameNotFound, req.FrameID)
		}
		return nil, fmt.Errorf("failed to fetch frame %d: %w", req.FrameID, err)
	}
	lensType, err := s.catalogRepo.GetLensTypeByID(ctx, tx, req.LensTypeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrLensTypeNotFound, req.LensTypeID)
		}
		return nil, fmt.Errorf("failed to fetch lens type %d: %w", req.LensTypeID, err)
	}

	unitPrice := frame.Price
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	unitPrice = pricing.RoundCents(unitPrice)

	var totalPrice decimal.Decimal
	if req.TotalPrice != nil {
		totalPrice = pricing.RoundCents(*req.TotalPrice)
	} else {
		totalPrice, err = pricing.LineTotal(unitPrice, lensType.PriceMultiplier, quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	sale := &models.Sale{
		ShopID:     shopID,
		FrameID:    frame.ID,
		LensTypeID: lensType.ID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: totalPrice,
	}
	if _, err := s.saleRepo.CreateSale(ctx, tx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", mapReferenceError(err))
	}

	if _, err := s.inventory.DecrementStock(ctx, tx, shopID, frame.ID, quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	utils.LogInfo("Sale recorded", map[string]interface{}{
		"sale_id": sale.ID, "shop_id": shopID, "frame_id": frame.ID,
		"quantity": quantity, "total_price": totalPrice.StringFixed(pricing.CentPlaces),
	})
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, shopID int64) ([]models.SaleView, error) {
	if err := requireShop(ctx, s.shopRepo, nil, shopID); err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.GetSalesByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales for shop %d: %w", shopID, err)
	}
	return sales, nil
}

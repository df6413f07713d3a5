package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frame_ledger_backend/internal/config"
	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// IncrementInventoryRequest adds stock of one frame to a shop.
type IncrementInventoryRequest struct {
	FrameID  int64 `json:"frame_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

// InventoryService is the shop inventory ledger. Every write goes through
// a single upsert per (shop, frame), so concurrent writers never lose updates.
type InventoryService interface {
	GetInventory(ctx context.Context, shopID int64) ([]models.InventoryItem, error)
	IncrementInventory(ctx context.Context, shopID int64, req IncrementInventoryRequest) (*models.InventoryEntry, error)

	// AddStock applies delta inside the caller's transaction. Used by the CSV importer.
	AddStock(ctx context.Context, executor repositories.SQLExecutor, shopID, frameID int64, delta int) (*models.InventoryEntry, error)
	// DecrementStock debits a sale inside the caller's transaction, honouring the stock policy.
	DecrementStock(ctx context.Context, executor repositories.SQLExecutor, shopID, frameID int64, quantity int) (*models.InventoryEntry, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	shopRepo      repositories.ShopRepository
	catalogRepo   repositories.CatalogRepository
	db            *sql.DB
	stockPolicy   string
}

// NewInventoryService creates a new instance of InventoryService.
// stockPolicy is one of config.StockPolicyAllowNegative or config.StockPolicyRejectOversell.
func NewInventoryService(
	ir repositories.InventoryRepository,
	sr repositories.ShopRepository,
	cr repositories.CatalogRepository,
	db *sql.DB,
	stockPolicy string,
) InventoryService {
	if stockPolicy == "" {
		stockPolicy = config.StockPolicyAllowNegative
	}
	return &inventoryService{
		inventoryRepo: ir,
		shopRepo:      sr,
		catalogRepo:   cr,
		db:            db,
		stockPolicy:   stockPolicy,
	}
}

func (s *inventoryService) GetInventory(ctx context.Context, shopID int64) ([]models.InventoryItem, error) {
	if err := requireShop(ctx, s.shopRepo, nil, shopID); err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.GetInventoryByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for shop %d: %w", shopID, err)
	}
	return items, nil
}

func (s *inventoryService) IncrementInventory(ctx context.Context, shopID int64, req IncrementInventoryRequest) (*models.InventoryEntry, error) {
	if req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must not be zero", ErrValidation)
	}
	if req.FrameID <= 0 {
		return nil, fmt.Errorf("%w: frame_id must be positive", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireShop(ctx, s.shopRepo, tx, shopID); err != nil {
		return nil, err
	}
	if err := requireFrame(ctx, s.catalogRepo, tx, req.FrameID); err != nil {
		return nil, err
	}

	entry, err := s.AddStock(ctx, tx, shopID, req.FrameID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit inventory transaction: %w", err)
	}
	utils.LogDebug("Inventory incremented", map[string]interface{}{
		"shop_id": shopID, "frame_id": req.FrameID, "delta": req.Quantity, "quantity": entry.Quantity,
	})
	return entry, nil
}

func (s *inventoryService) AddStock(ctx context.Context, executor repositories.SQLExecutor, shopID, frameID int64, delta int) (*models.InventoryEntry, error) {
	entry, err := s.inventoryRepo.AdjustStock(ctx, executor, shopID, frameID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock for frame %d in shop %d: %w", frameID, shopID, mapReferenceError(err))
	}
	return entry, nil
}

func (s *inventoryService) DecrementStock(ctx context.Context, executor repositories.SQLExecutor, shopID, frameID int64, quantity int) (*models.InventoryEntry, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: decrement quantity must be positive", ErrValidation)
	}

	if s.stockPolicy == config.StockPolicyRejectOversell {
		onHand, found, err := s.inventoryRepo.GetQuantityForUpdate(ctx, executor, shopID, frameID)
		if err != nil {
			return nil, fmt.Errorf("failed to lock stock for frame %d in shop %d: %w", frameID, shopID, err)
		}
		if !found || onHand < quantity {
			return nil, fmt.Errorf("%w: frame %d in shop %d has %d, requested %d", ErrInsufficientStock, frameID, shopID, onHand, quantity)
		}
	}

	entry, err := s.AddStock(ctx, executor, shopID, frameID, -quantity)
	if err != nil {
		return nil, err
	}
	if entry.Quantity < 0 {
		utils.LogWarn("Inventory oversold", map[string]interface{}{
			"shop_id": shopID, "frame_id": frameID, "quantity": entry.Quantity,
		})
	}
	return entry, nil
}

// requireShop returns ErrShopNotFound unless the shop exists.
func requireShop(ctx context.Context, repo repositories.ShopRepository, executor repositories.SQLExecutor, shopID int64) error {
	ok, err := repo.ShopExists(ctx, executor, shopID)
	if err != nil {
		return fmt.Errorf("failed to check shop %d: %w", shopID, err)
	}
	if !ok {
		return fmt.Errorf("%w: ID %d", ErrShopNotFound, shopID)
	}
	return nil
}

// requireFrame returns ErrFrameNotFound unless the frame exists.
func requireFrame(ctx context.Context, repo repositories.CatalogRepository, executor repositories.SQLExecutor, frameID int64) error {
	_, err := repo.GetFrameByID(ctx, executor, frameID)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: ID %d", ErrFrameNotFound, frameID)
	}
	if err != nil {
		return fmt.Errorf("failed to check frame %d: %w", frameID, err)
	}
	return nil
}

// mapReferenceError turns a foreign key violation into a not-found service error.
func mapReferenceError(err error) error {
	if errors.Is(err, repositories.ErrForeignKey) {
		return fmt.Errorf("%w: %v", ErrFrameNotFound, err)
	}
	return err
}

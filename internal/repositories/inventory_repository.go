package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frame_ledger_backend/internal/models"
)

// InventoryRepository defines the database operations on shop_inventory.
type InventoryRepository interface {
	GetInventoryByShop(ctx context.Context, shopID int64) ([]models.InventoryItem, error)
	// AdjustStock adds delta (possibly negative) to the (shop, frame) entry,
	// creating the entry with quantity = delta when absent. It is a single
	// upsert statement, so concurrent adjustments never lose updates.
	AdjustStock(ctx context.Context, executor SQLExecutor, shopID, frameID int64, delta int) (*models.InventoryEntry, error)
	// GetQuantityForUpdate locks the (shop, frame) entry for the rest of the
	// caller's transaction. found is false when no entry exists.
	GetQuantityForUpdate(ctx context.Context, executor SQLExecutor, shopID, frameID int64) (quantity int, found bool, err error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetInventoryByShop(ctx context.Context, shopID int64) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	query := `SELECT si.id, f.id, f.product_id, f.name, f.description, f.price, si.quantity
	          FROM shop_inventory si
	          JOIN frames f ON si.frame_id = f.id
	          WHERE si.shop_id = $1
	          ORDER BY f.product_id`
	rows, err := r.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("getting inventory for shop %d", shopID))
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.FrameID, &item.ProductID, &item.Name, &description, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		if description.Valid {
			item.Description = &description.String
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) AdjustStock(ctx context.Context, executor SQLExecutor, shopID, frameID int64, delta int) (*models.InventoryEntry, error) {
	query := `INSERT INTO shop_inventory (shop_id, frame_id, quantity)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (shop_id, frame_id)
	          DO UPDATE SET quantity = shop_inventory.quantity + EXCLUDED.quantity, updated_at = NOW()
	          RETURNING id, shop_id, frame_id, quantity, created_at, updated_at`
	entry := &models.InventoryEntry{}
	err := executor.QueryRowContext(ctx, query, shopID, frameID, delta).Scan(
		&entry.ID, &entry.ShopID, &entry.FrameID, &entry.Quantity, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("adjusting stock for shop %d frame %d", shopID, frameID))
	}
	return entry, nil
}

func (r *inventoryRepository) GetQuantityForUpdate(ctx context.Context, executor SQLExecutor, shopID, frameID int64) (int, bool, error) {
	var quantity int
	query := `SELECT quantity FROM shop_inventory WHERE shop_id = $1 AND frame_id = $2 FOR UPDATE`
	err := executor.QueryRowContext(ctx, query, shopID, frameID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrapDBError(err, fmt.Sprintf("locking stock for shop %d frame %d", shopID, frameID))
	}
	return quantity, true, nil
}

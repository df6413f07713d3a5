package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frame_ledger_backend/internal/models"
)

// ShopRepository defines the database operations on shops.
type ShopRepository interface {
	CreateShop(ctx context.Context, executor SQLExecutor, shop *models.Shop) (int64, error)
	GetShopByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Shop, error)
	GetShops(ctx context.Context) ([]models.Shop, error)
	ShopExists(ctx context.Context, executor SQLExecutor, id int64) (bool, error)
}

type shopRepository struct {
	db *sql.DB
}

// NewShopRepository creates a new instance of ShopRepository.
func NewShopRepository(db *sql.DB) ShopRepository {
	return &shopRepository{db: db}
}

const shopColumns = `id, name, address, access_key_hash, created_at`

func scanShop(s scanner, shop *models.Shop) error {
	var address, keyHash sql.NullString
	if err := s.Scan(&shop.ID, &shop.Name, &address, &keyHash, &shop.CreatedAt); err != nil {
		return err
	}
	if address.Valid {
		shop.Address = &address.String
	}
	if keyHash.Valid && keyHash.String != "" {
		shop.AccessKeyHash = &keyHash.String
		shop.HasAccessKey = true
	}
	return nil
}

func (r *shopRepository) CreateShop(ctx context.Context, executor SQLExecutor, shop *models.Shop) (int64, error) {
	query := `INSERT INTO shops (name, address, access_key_hash)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := executor.QueryRowContext(ctx, query, shop.Name, shop.Address, shop.AccessKeyHash).
		Scan(&shop.ID, &shop.CreatedAt)
	if err != nil {
		return 0, wrapDBError(err, "creating shop")
	}
	shop.HasAccessKey = shop.AccessKeyHash != nil
	return shop.ID, nil
}

func (r *shopRepository) GetShopByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Shop, error) {
	if executor == nil {
		executor = r.db
	}
	shop := &models.Shop{}
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`
	if err := scanShop(executor.QueryRowContext(ctx, query, id), shop); err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("getting shop by ID %d", id))
	}
	return shop, nil
}

func (r *shopRepository) GetShops(ctx context.Context) ([]models.Shop, error) {
	shops := []models.Shop{}
	rows, err := r.db.QueryContext(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY id`)
	if err != nil {
		return nil, wrapDBError(err, "getting shops")
	}
	defer rows.Close()

	for rows.Next() {
		var shop models.Shop
		if err := scanShop(rows, &shop); err != nil {
			return nil, fmt.Errorf("%w: scanning shop: %v", ErrDatabaseError, err)
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shops: %v", ErrDatabaseError, err)
	}
	return shops, nil
}

// ShopExists takes a share lock on the shop row when run inside a transaction,
// so the shop cannot disappear before the caller commits.
func (r *shopRepository) ShopExists(ctx context.Context, executor SQLExecutor, id int64) (bool, error) {
	if executor == nil {
		executor = r.db
	}
	var found int64
	err := executor.QueryRowContext(ctx, `SELECT id FROM shops WHERE id = $1 FOR SHARE`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapDBError(err, fmt.Sprintf("checking shop %d", id))
	}
	return true, nil
}

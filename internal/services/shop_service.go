package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// minAccessKeyLength is the shortest shop access key accepted at creation.
const minAccessKeyLength = 8

// CreateShopRequest is used for creating a new shop.
type CreateShopRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   *string `json:"address"`
	AccessKey string  `json:"access_key"` // Optional; enables shop login when set
}

// ShopService manages shops. Shops are never updated or deleted.
type ShopService interface {
	CreateShop(ctx context.Context, req CreateShopRequest) (*models.Shop, error)
	GetShops(ctx context.Context) ([]models.Shop, error)
	GetShopByID(ctx context.Context, shopID int64) (*models.Shop, error)
}

type shopService struct {
	shopRepo repositories.ShopRepository
	db       *sql.DB
}

// NewShopService creates a new instance of ShopService.
func NewShopService(repo repositories.ShopRepository, db *sql.DB) ShopService {
	return &shopService{shopRepo: repo, db: db}
}

func (s *shopService) CreateShop(ctx context.Context, req CreateShopRequest) (*models.Shop, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: shop name cannot be empty", ErrValidation)
	}
	shop := &models.Shop{Name: strings.TrimSpace(req.Name)}
	if req.Address != nil {
		shop.Address = utils.OptionalString(*req.Address)
	}
	if req.AccessKey != "" {
		if len(req.AccessKey) < minAccessKeyLength {
			return nil, fmt.Errorf("%w: access key must be at least %d characters", ErrValidation, minAccessKeyLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.AccessKey), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash access key: %w", err)
		}
		hashStr := string(hash)
		shop.AccessKeyHash = &hashStr
	}

	if _, err := s.shopRepo.CreateShop(ctx, s.db, shop); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	utils.LogInfo("Shop created", map[string]interface{}{"shop_id": shop.ID, "name": shop.Name})
	return shop, nil
}

func (s *shopService) GetShops(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.shopRepo.GetShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get shops: %w", err)
	}
	return shops, nil
}

func (s *shopService) GetShopByID(ctx context.Context, shopID int64) (*models.Shop, error) {
	shop, err := s.shopRepo.GetShopByID(ctx, nil, shopID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrShopNotFound, shopID)
		}
		return nil, fmt.Errorf("failed to get shop %d: %w", shopID, err)
	}
	return shop, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/pricing"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// CreateFrameRequest is used for adding a frame to the catalog.
type CreateFrameRequest struct {
	ProductID   string          `json:"product_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// CatalogService manages the shared frame catalog and the read-only lens types.
type CatalogService interface {
	CreateFrame(ctx context.Context, req CreateFrameRequest) (*models.Frame, error)
	GetFrames(ctx context.Context) ([]models.Frame, error)
	GetLensTypes(ctx context.Context) ([]models.LensType, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
	db          *sql.DB
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(repo repositories.CatalogRepository, db *sql.DB) CatalogService {
	return &catalogService{catalogRepo: repo, db: db}
}

func (s *catalogService) CreateFrame(ctx context.Context, req CreateFrameRequest) (*models.Frame, error) {
	productID := strings.TrimSpace(req.ProductID)
	name := strings.TrimSpace(req.Name)
	if productID == "" || name == "" {
		return nil, fmt.Errorf("%w: product_id and name are required", ErrValidation)
	}
	if err := pricing.CheckAmount(req.Price); err != nil {
		return nil, fmt.Errorf("%w: price: %v", ErrValidation, err)
	}

	frame := &models.Frame{
		ProductID: productID,
		Name:      name,
		Price:     pricing.RoundCents(req.Price),
	}
	if req.Description != nil {
		frame.Description = utils.OptionalString(*req.Description)
	}

	if _, err := s.catalogRepo.CreateFrame(ctx, s.db, frame); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrProductIDExists, productID)
		}
		return nil, fmt.Errorf("failed to create frame: %w", err)
	}
	return frame, nil
}

func (s *catalogService) GetFrames(ctx context.Context) ([]models.Frame, error) {
	frames, err := s.catalogRepo.GetFrames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get frames: %w", err)
	}
	return frames, nil
}

func (s *catalogService) GetLensTypes(ctx context.Context) ([]models.LensType, error) {
	lensTypes, err := s.catalogRepo.GetLensTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get lens types: %w", err)
	}
	return lensTypes, nil
}

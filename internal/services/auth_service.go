package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// AuthService exchanges access keys for role-scoped tokens.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	shopRepo           repositories.ShopRepository
	tokens             *utils.TokenManager
	distributorKeyHash string
}

// NewAuthService creates a new instance of AuthService.
// distributorKeyHash is a bcrypt hash; when empty, distributor login is refused.
func NewAuthService(shopRepo repositories.ShopRepository, tokens *utils.TokenManager, distributorKeyHash string) AuthService {
	return &authService{
		shopRepo:           shopRepo,
		tokens:             tokens,
		distributorKeyHash: distributorKeyHash,
	}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var shopID int64
	switch req.Role {
	case utils.RoleDistributor:
		if s.distributorKeyHash == "" {
			return nil, fmt.Errorf("%w: distributor login is not configured", ErrInvalidCredentials)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.distributorKeyHash), []byte(req.AccessKey)); err != nil {
			return nil, ErrInvalidCredentials
		}
	case utils.RoleShop:
		if req.ShopID <= 0 {
			return nil, fmt.Errorf("%w: shop_id is required for shop login", ErrValidation)
		}
		shop, err := s.shopRepo.GetShopByID(ctx, nil, req.ShopID)
		if err != nil {
			// Unknown shops look the same as a wrong key.
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("failed to get shop %d: %w", req.ShopID, err)
		}
		if shop.AccessKeyHash == nil {
			return nil, ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*shop.AccessKeyHash), []byte(req.AccessKey)); err != nil {
			return nil, ErrInvalidCredentials
		}
		shopID = shop.ID
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(req.Role, shopID)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Login succeeded", map[string]interface{}{"role": req.Role, "shop_id": shopID})
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        req.Role,
		ShopID:      shopID,
	}, nil
}

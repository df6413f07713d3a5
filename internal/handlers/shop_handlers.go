package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
)

// ShopHandler holds the shop service.
type ShopHandler struct {
	shopService services.ShopService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(ss services.ShopService) *ShopHandler {
	return &ShopHandler{shopService: ss}
}

// CreateShop handles the creation of a new shop.
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req services.CreateShopRequest
	if !bindJSON(c, &req, "CreateShop") {
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateShop: Error from shopService.CreateShop", "Failed to create shop.")
		return
	}
	c.JSON(http.StatusCreated, shop)
}

// GetShops handles fetching all shops.
func (h *ShopHandler) GetShops(c *gin.Context) {
	shops, err := h.shopService.GetShops(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetShops: Error from shopService.GetShops", "Failed to fetch shops.")
		return
	}
	c.JSON(http.StatusOK, shops)
}

// GetShopByID handles fetching a single shop.
func (h *ShopHandler) GetShopByID(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	shop, err := h.shopService.GetShopByID(c.Request.Context(), shopID)
	if err != nil {
		respondServiceError(c, err, "GetShopByID: Error from shopService.GetShopByID", "Failed to fetch shop.")
		return
	}
	c.JSON(http.StatusOK, shop)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
)

// CatalogHandler holds the catalog service.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// CreateFrame adds a frame to the shared catalog.
func (h *CatalogHandler) CreateFrame(c *gin.Context) {
	var req services.CreateFrameRequest
	if !bindJSON(c, &req, "CreateFrame") {
		return
	}

	frame, err := h.catalogService.CreateFrame(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateFrame: Error from catalogService.CreateFrame", "Failed to create frame.")
		return
	}
	c.JSON(http.StatusCreated, frame)
}

// GetFrames lists the catalog ordered by product ID.
func (h *CatalogHandler) GetFrames(c *gin.Context) {
	frames, err := h.catalogService.GetFrames(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetFrames: Error from catalogService.GetFrames", "Failed to fetch frames.")
		return
	}
	c.JSON(http.StatusOK, frames)
}

// GetLensTypes lists the lens types.
func (h *CatalogHandler) GetLensTypes(c *gin.Context) {
	lensTypes, err := h.catalogService.GetLensTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetLensTypes: Error from catalogService.GetLensTypes", "Failed to fetch lens types.")
		return
	}
	c.JSON(http.StatusOK, lensTypes)
}

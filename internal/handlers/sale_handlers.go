package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
)

// IdempotencyKeyHeader lets clients retry a sale without recording it twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// RecordSale records a sale and debits the shop's stock.
func (h *SaleHandler) RecordSale(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	var req services.RecordSaleRequest
	if !bindJSON(c, &req, "RecordSale") {
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))

	sale, err := h.saleService.RecordSale(c.Request.Context(), shopID, req)
	if err != nil {
		respondServiceError(c, err, "RecordSale: Error from saleService.RecordSale", "Failed to record sale.")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales lists a shop's sales, newest first.
func (h *SaleHandler) ListSales(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	sales, err := h.saleService.ListSales(c.Request.Context(), shopID)
	if err != nil {
		respondServiceError(c, err, "ListSales: Error from saleService.ListSales", "Failed to fetch sales.")
		return
	}
	c.JSON(http.StatusOK, sales)
}

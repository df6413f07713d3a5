package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetSummary provides the distributor dashboard figures.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetSummary: Error from reportService.GetSummary", "Failed to build summary.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

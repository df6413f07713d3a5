package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
	"frame_ledger_backend/pkg/utils"
)

// BillingHandler holds the billing service.
type BillingHandler struct {
	billingService services.BillingService
	location       *time.Location
	now            func() time.Time
}

// NewBillingHandler creates a new BillingHandler. The current month and year,
// used when the query omits them, are taken in loc.
func NewBillingHandler(bs services.BillingService, loc *time.Location) *BillingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BillingHandler{billingService: bs, location: loc, now: time.Now}
}

// GetMonthlyBill returns a shop's sales for ?month=&year= with their totals.
func (h *BillingHandler) GetMonthlyBill(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	now := h.now().In(h.location)
	month, year := int(now.Month()), now.Year()
	var err error
	if m := c.Query("month"); m != "" {
		if month, err = strconv.Atoi(m); err != nil {
			utils.RespondValidationFailed(c, "month must be an integer")
			return
		}
	}
	if y := c.Query("year"); y != "" {
		if year, err = strconv.Atoi(y); err != nil {
			utils.RespondValidationFailed(c, "year must be an integer")
			return
		}
	}

	bill, err := h.billingService.GetMonthlyBill(c.Request.Context(), shopID, month, year)
	if err != nil {
		respondServiceError(c, err, "GetMonthlyBill: Error from billingService.GetMonthlyBill", "Failed to build monthly bill.")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// MarkBilled flags the given sales of the shop as billed.
func (h *BillingHandler) MarkBilled(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	var req services.MarkBilledRequest
	if !bindJSON(c, &req, "MarkBilled") {
		return
	}

	updated, err := h.billingService.MarkBilled(c.Request.Context(), shopID, req.SalesIDs)
	if err != nil {
		respondServiceError(c, err, "MarkBilled: Error from billingService.MarkBilled", "Failed to mark sales billed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
	"frame_ledger_backend/pkg/utils"
)

// ImportFormField is the multipart field carrying the inventory CSV.
const ImportFormField = "csvFile"

// InventoryHandler holds the inventory and import services.
type InventoryHandler struct {
	inventoryService services.InventoryService
	importService    services.ImportService
	maxImportBytes   int64
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService, imp services.ImportService, maxImportBytes int64) *InventoryHandler {
	return &InventoryHandler{inventoryService: is, importService: imp, maxImportBytes: maxImportBytes}
}

// GetInventory lists a shop's stock joined with frame details.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	items, err := h.inventoryService.GetInventory(c.Request.Context(), shopID)
	if err != nil {
		respondServiceError(c, err, "GetInventory: Error from inventoryService.GetInventory", "Failed to fetch inventory.")
		return
	}
	c.JSON(http.StatusOK, items)
}

// IncrementInventory adds (or, with a negative quantity, removes) stock of one frame.
func (h *InventoryHandler) IncrementInventory(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	var req services.IncrementInventoryRequest
	if !bindJSON(c, &req, "IncrementInventory") {
		return
	}

	entry, err := h.inventoryService.IncrementInventory(c.Request.Context(), shopID, req)
	if err != nil {
		respondServiceError(c, err, "IncrementInventory: Error from inventoryService.IncrementInventory", "Failed to update inventory.")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ImportInventoryCSV accepts either a multipart upload in the csvFile field
// or a raw text/csv body.
func (h *InventoryHandler) ImportInventoryCSV(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	payload, err := h.readImportPayload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusRequestEntityTooLarge, utils.ErrCodePayloadTooLarge,
				fmt.Sprintf("CSV file exceeds %d bytes.", h.maxImportBytes), err.Error()))
			return
		}
		utils.LogError(err, "ImportInventoryCSV: Failed to read upload")
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		utils.RespondValidationFailed(c, "CSV file is empty")
		return
	}

	result, err := h.importService.ImportInventoryCSV(c.Request.Context(), shopID, bytes.NewReader(payload))
	if err != nil {
		respondServiceError(c, err, "ImportInventoryCSV: Error from importService.ImportInventoryCSV", "Failed to import inventory.")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) readImportPayload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImportBytes)

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return io.ReadAll(c.Request.Body)
	}

	fileHeader, err := c.FormFile(ImportFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("missing %s upload: %w", ImportFormField, err)
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

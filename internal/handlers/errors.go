package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/services"
	"frame_ledger_backend/pkg/utils"
)

// respondServiceError maps service errors to API errors. failMessage is shown
// to the client for unexpected errors, whose cause is only logged.
func respondServiceError(c *gin.Context, err error, op, failMessage string) {
	utils.LogError(err, op, map[string]interface{}{"request_id": c.GetString(utils.RequestIDKey)})
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed.", err.Error()))
	case errors.Is(err, services.ErrShopNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shop not found.", err.Error()))
	case errors.Is(err, services.ErrFrameNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Frame not found.", err.Error()))
	case errors.Is(err, services.ErrLensTypeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Lens type not found.", err.Error()))
	case errors.Is(err, services.ErrProductIDExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Product ID already exists.", err.Error()))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock.", err.Error()))
	case errors.Is(err, services.ErrDuplicateRequest):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Request already processed.", err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials.", ""))
	default:
		utils.RespondInternalError(c, failMessage)
	}
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return false
	}
	return true
}

// shopIDParam reads the :shopId path parameter.
func shopIDParam(c *gin.Context) (int64, bool) {
	shopID, err := utils.ParsePositiveID(c.Param("shopId"))
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid shop ID format: "+err.Error())
		return 0, false
	}
	return shopID, true
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/services"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login exchanges a distributor or shop access key for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req, "Login") {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Login: Error from authService.Login", "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

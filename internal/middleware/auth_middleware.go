package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frame_ledger_backend/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ContextRoleKey   = "userRole"
	ContextShopIDKey = "shopID"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
// With disabled set every request is treated as the distributor.
func AuthMiddleware(tokens *utils.TokenManager, disabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if disabled {
			c.Set(ContextRoleKey, utils.RoleDistributor)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(ContextRoleKey, claims.Role)
		if claims.Role == utils.RoleShop {
			c.Set(ContextShopIDKey, claims.ShopID)
		}
		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the caller's role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRoleKey)
		if role == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Role not found in token claims", ""))
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource. Required roles: "+strings.Join(allowedRoles, ", "), ""))
	}
}

// ShopScopeMiddleware keeps shop tokens inside their own shop.
// Distributor tokens pass through; the :shopId path parameter must match a shop token's shop id.
func ShopScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != utils.RoleShop {
			c.Next()
			return
		}
		shopID, err := utils.ParsePositiveID(c.Param("shopId"))
		if err != nil {
			utils.RespondValidationFailed(c, "Invalid shop ID: "+err.Error())
			return
		}
		if c.GetInt64(ContextShopIDKey) != shopID {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Shop tokens may only access their own shop", ""))
			return
		}
		c.Next()
	}
}

package models

import "time"

// LoginRequest exchanges an access key for a role-scoped token.
// ShopID is required when Role is "shop".
type LoginRequest struct {
	Role      string `json:"role" binding:"required,oneof=distributor shop"`
	ShopID    int64  `json:"shop_id"`
	AccessKey string `json:"access_key" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
	ShopID      int64     `json:"shop_id,omitempty"`
}

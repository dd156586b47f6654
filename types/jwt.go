package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	// TokenType distinguishes access from refresh tokens
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

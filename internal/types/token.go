package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleUser = "user"
	// RoleAdmin grants access to the feedback admin routes.
	RoleAdmin = "admin"
)

// TokenClaims represents the claims in a JWT token issued by the identity provider
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role,omitempty"`
}

// IsAdmin reports whether the token carries the admin role.
func (c *TokenClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

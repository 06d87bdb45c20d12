package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims carries the session identity inside a JWT
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

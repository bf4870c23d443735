package auth

import "github.com/golang-jwt/jwt/v5"

// TokenType distinguishes access tokens from refresh tokens. A token of one
// type is never accepted where the other is required.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the JWT payload. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"type"`
}

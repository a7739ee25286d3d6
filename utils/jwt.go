package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hotelchain-backend/models"
)

// AuthCookieName is the HTTP-only cookie carrying the signed credential.
const AuthCookieName = "auth-token"

// TokenTTL matches the cookie max age.
const TokenTTL = 7 * 24 * time.Hour

func jwtSecret() []byte {
	return []byte(EnvOrDefault("JWT_SECRET", "change-me-in-production"))
}

// Claims is the signed credential payload.
type Claims struct {
	UserID  uint        `json:"userId"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	HotelID *uint       `json:"hotelId,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a credential for the given user.
func GenerateToken(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		HotelID: user.HotelID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "hotelchain-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a credential, returning its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthUser converts claims into the identity passed to services.
func (c *Claims) AuthUser() models.AuthUser {
	return models.AuthUser{
		ID:      c.UserID,
		Email:   c.Email,
		Role:    c.Role,
		HotelID: c.HotelID,
	}
}

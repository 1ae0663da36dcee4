package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	accessSecret string
	accessExpiry time.Duration
)

// InitJWT initializes the session token secret and expiry
func InitJWT(secret string, expiry time.Duration) {
	accessSecret = secret
	accessExpiry = expiry
}

// Claims carries the facility name that acts as the caller identity
type Claims struct {
	FacilityName string `json:"facility_name"`
	jwt.RegisteredClaims
}

// GenerateSessionToken issues a signed session token for a facility
func GenerateSessionToken(facilityName string) (string, error) {
	now := time.Now()
	claims := Claims{
		FacilityName: facilityName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        GenerateID(),
			Subject:   facilityName,
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(accessSecret))
}

// ValidateSessionToken validates and parses a session token
func ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(accessSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.FacilityName != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GetSessionExpiry returns the session token lifetime
func GetSessionExpiry() time.Duration {
	return accessExpiry
}

package middleware

import (
	"net/http"
	"strings"

	"heart-matching-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FacilityNameKey is the gin context key holding the caller's facility name
const FacilityNameKey = "facilityName"

// AuthMiddleware validates the session token from the Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(FacilityNameKey, claims.FacilityName)
		c.Next()
	}
}

// CurrentFacility returns the authenticated facility name, or "" outside AuthMiddleware
func CurrentFacility(c *gin.Context) string {
	return c.GetString(FacilityNameKey)
}

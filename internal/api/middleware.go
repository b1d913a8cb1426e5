package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipefinder/internal/user"
)

const claimsKey = "claims"

// RequireAuth rejects requests without a valid bearer token and makes the
// verified identity available to downstream handlers.
func RequireAuth(tokens TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func currentClaims(c *gin.Context) *user.Claims {
	return c.MustGet(claimsKey).(*user.Claims)
}

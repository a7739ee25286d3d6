package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelchain-backend/models"
	"hotelchain-backend/utils"
)

const userContextKey = "currentUser"

// RequireAuth resolves the caller's identity from the auth cookie (or a
// bearer header, for API clients) and stores it in the request context.
// Absence or invalidity yields 401 on every protected route.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired credential")
			c.Abort()
			return
		}

		c.Set(userContextKey, claims.AuthUser())
		c.Next()
	}
}

// RequireMinimumRole gates a route group on the role hierarchy. Must run
// after RequireAuth.
func RequireMinimumRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if !user.HasMinimumRole(min) {
			utils.JSONError(c, http.StatusForbidden, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireAuth.
func CurrentUser(c *gin.Context) (models.AuthUser, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return models.AuthUser{}, false
	}
	user, ok := v.(models.AuthUser)
	return user, ok
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

package middleware

import (
	"net/http"
	"os"
	"strings"

	"backend/internal/auth"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName is the cookie carrying the long-lived refresh token.
const RefreshCookieName = "refreshToken"

// SetRefreshCookie stores the refresh token as an HttpOnly, SameSite=Lax
// cookie scoped to path /. The access token is never written to a cookie;
// the client keeps it in memory/storage and sends it as a bearer header.
func SetRefreshCookie(c *gin.Context, refreshToken string) {
	secure := os.Getenv("GIN_MODE") == "release"

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, refreshToken, int(auth.RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

// ClearRefreshCookie removes the refresh cookie with matching attributes.
func ClearRefreshCookie(c *gin.Context) {
	secure := os.Getenv("GIN_MODE") == "release"

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", secure, true)
}

// RequireAuth validates the bearer access token and stores the identity
// claims in the request context. Refresh tokens are signed with a
// different secret and cannot pass this check.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("Authorization is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		claims, err := auth.ParseAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("Invalid or expired token"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", claims.Name)
		c.Set("userEmail", claims.Email)
		c.Set("isAdmin", claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin rejects unless the is_admin flag embedded in the current
// access token is set. Runs after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists || isAdmin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Err("Admin access required"))
			return
		}
		c.Next()
	}
}

// Package middleware provides HTTP middleware for the FinanceU backend.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imLaanui/Financeu-platform-sub000/internal/handlers"
	"github.com/imLaanui/Financeu-platform-sub000/internal/service"
)

// RequireAuth validates the session token and attaches the verified claims to
// the request context. The cookie transport is checked first, then the
// Authorization header, so both browser sessions and bearer-header API
// clients work.
//
// The middleware never mutates stored state.
func RequireAuth(jwtService service.JWTService, cookies *handlers.CookieHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.GetSessionToken(c)
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		claims, err := jwtService.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token."})
			return
		}

		handlers.SetClaims(c, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/imLaanui/Financeu-platform-sub000/internal/service"
)

// claimsContextKey is the gin context key verified session claims live under.
const claimsContextKey = "session_claims"

// SetClaims attaches verified session claims to the request context.
func SetClaims(c *gin.Context, claims *service.Claims) {
	c.Set(claimsContextKey, claims)
}

// CurrentClaims returns the verified session claims, or nil when the request
// is unauthenticated.
func CurrentClaims(c *gin.Context) *service.Claims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

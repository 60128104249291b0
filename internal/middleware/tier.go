package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imLaanui/Financeu-platform-sub000/internal/handlers"
	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

// RequireTier admits the request only when the session's membership tier is
// in the allowed set. Must run after RequireAuth. The check itself is pure;
// no I/O happens here.
func RequireTier(allowed ...models.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := handlers.CurrentClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
			return
		}

		if !models.TierAllowed(claims.MembershipTier, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This content requires a higher membership tier.",
				"tier":  claims.MembershipTier,
			})
			return
		}

		c.Next()
	}
}

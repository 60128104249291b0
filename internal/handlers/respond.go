// Package handlers contains HTTP request handlers for the FinanceU backend.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes a JSON error body with the given status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// logAndRespondError logs the underlying error server-side and returns a
// generic message to the client. Store and driver detail never reaches the
// response body.
func logAndRespondError(c *gin.Context, logger *zap.Logger, status int, err error, message string) {
	logger.Error(message,
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", status),
		zap.Error(err),
	)
	respondError(c, status, message)
}

// respondServerError is the catch-all for store failures.
func respondServerError(c *gin.Context, logger *zap.Logger, err error) {
	logAndRespondError(c, logger, http.StatusInternalServerError, err, "Server error")
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "token"

// CookieConfig holds the attributes applied to the session cookie.
type CookieConfig struct {
	Path   string
	Domain string
	// Secure is set in production where the site is served over HTTPS.
	Secure   bool
	SameSite http.SameSite
}

// CookieHelper manages the session cookie. The same token returned in JSON
// bodies is also set here so browser clients get cookie-based sessions while
// API clients use the Authorization header.
type CookieHelper struct {
	config CookieConfig
}

// NewCookieHelper creates a new cookie helper with the given configuration.
func NewCookieHelper(config CookieConfig) *CookieHelper {
	if config.Path == "" {
		config.Path = "/"
	}
	if config.SameSite == 0 {
		config.SameSite = http.SameSiteLaxMode
	}
	return &CookieHelper{config: config}
}

// SetSessionCookie sets the session token cookie with the given lifetime.
func (h *CookieHelper) SetSessionCookie(c *gin.Context, token string, expiry time.Duration) {
	h.setCookie(c, token, int(expiry.Seconds()))
}

// ClearSessionCookie removes the session cookie.
func (h *CookieHelper) ClearSessionCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

// GetSessionToken retrieves the session token from the cookie, or "" when
// absent.
func (h *CookieHelper) GetSessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.config.SameSite)
	c.SetCookie(
		SessionCookie,
		value,
		maxAge,
		h.config.Path,
		h.config.Domain,
		h.config.Secure,
		true, // httpOnly - always true for auth cookies
	)
}

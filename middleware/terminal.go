package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/session"
)

const terminalKey = "terminal"

// AttachTerminal resolves the kiosk terminal for the session set by
// ValidateToken, creating it on the session's first request.
func AttachTerminal(registry *kiosk.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(terminalKey, registry.Get(s.Key()))
		c.Next()
	}
}

// CurrentTerminal returns the terminal AttachTerminal put on c.
func CurrentTerminal(c *gin.Context) (*kiosk.Terminal, bool) {
	v, ok := c.Get(terminalKey)
	if !ok {
		return nil, false
	}
	t, ok := v.(*kiosk.Terminal)
	return t, ok
}

// RequireTerminal is CurrentTerminal for handlers: when no terminal is
// attached it writes a 401 and reports false.
func RequireTerminal(c *gin.Context) (*kiosk.Terminal, bool) {
	t, ok := CurrentTerminal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return t, ok
}

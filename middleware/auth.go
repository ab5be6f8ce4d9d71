package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/session"
)

// ValidateToken rebuilds the caller's session from the Authorization
// header and attaches it to the request. Guest tokens are refused when
// allowGuests is false.
func ValidateToken(issuer *session.Issuer, allowGuests bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		s, claims, err := issuer.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if claims.Role == session.RoleGuest && !allowGuests {
			c.JSON(http.StatusForbidden, gin.H{"error": "Guest ordering is disabled"})
			c.Abort()
			return
		}

		session.Attach(c, s)
		c.Set("role", claims.Role)
		c.Next()
	}
}

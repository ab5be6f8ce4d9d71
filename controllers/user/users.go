package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/session"
)

// GET /user/session
//
// Who is signed in on this terminal and what it currently holds.
func GetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := session.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		body := gin.H{
			"terminal":     s.Key(),
			"logged_in":    s.IsLoggedIn(),
			"user_id":      s.UserID(),
			"email":        s.Email(),
			"role":         c.GetString("role"),
			"cart_items":   0,
			"orders_count": 0,
		}
		if t, ok := middleware.CurrentTerminal(c); ok {
			body["cart_items"] = t.Cart().ItemCount()
			body["orders_count"] = t.Ledger().Len()
			body["checkout"] = t.CheckoutStatus()
		}
		c.JSON(http.StatusOK, body)
	}
}

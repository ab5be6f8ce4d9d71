package catalogControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/catalog"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

// GET /catalog/menu
func GetMenu(menu *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": menu.Menu()})
	}
}

// GET /catalog/credits
func GetCredits(menu *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items":           menu.Credits(),
			"payment_methods": models.PaymentMethods(),
		})
	}
}

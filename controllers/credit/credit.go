package creditControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/catalog"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

type PaymentInput struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// POST /user/credits/:id/purchase
func BeginPurchase(menu *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		item, found := menu.CreditItem(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit package does not exist"})
			return
		}

		prompt, err := t.BeginCreditPurchase(item)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"item":            item,
			"prompt":          prompt,
			"payment_methods": models.PaymentMethods(),
		})
	}
}

// POST /user/credits/purchase/payment
func ChoosePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		var input PaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		text, err := t.ChooseCreditPayment(models.PaymentMethod(input.PaymentMethod))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"confirmation": text})
	}
}

// POST /user/credits/purchase/confirm
func ConfirmPurchase() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		msg, err := t.ConfirmCreditPurchase()
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

// POST /user/credits/purchase/cancel
func CancelPurchase() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}
		if err := t.CancelCreditPurchase(); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Purchase cancelled."})
	}
}

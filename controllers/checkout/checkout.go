package checkoutControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
	"github.com/junaidrashid-git/cybereatdiri/models"
)

type DetailsInput struct {
	PCNumber       string `json:"pc_number"`
	SpecialRequest string `json:"special_request"`
}

type PaymentInput struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// GET /user/checkout
//
// Reports the checkout in progress and the details to prefill.
func GetCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"checkout":        t.CheckoutStatus(),
			"preferences":     t.Preferences(),
			"payment_methods": models.PaymentMethods(),
		})
	}
}

// POST /user/checkout
func BeginCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		var input DetailsInput
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}

		status, err := t.BeginCheckout(input.PCNumber, input.SpecialRequest)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"checkout":        status,
			"payment_methods": models.PaymentMethods(),
		})
	}
}

// POST /user/checkout/payment
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

		summary, err := t.ChooseCheckoutPayment(models.PaymentMethod(input.PaymentMethod))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"summary": summary,
			"text":    summary.Text(),
		})
	}
}

// POST /user/checkout/confirm
func ConfirmCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}

		order, err := t.ConfirmCheckout()
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": kiosk.OrderMessage(order),
			"order":   order,
		})
	}
}

// POST /user/checkout/cancel
func CancelCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := middleware.RequireTerminal(c)
		if !ok {
			return
		}
		if err := t.CancelCheckout(); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": t.CheckoutStatus()})
	}
}

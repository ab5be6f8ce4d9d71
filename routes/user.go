package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/cybereatdiri/controllers/cart"
	checkoutControllers "github.com/junaidrashid-git/cybereatdiri/controllers/checkout"
	creditControllers "github.com/junaidrashid-git/cybereatdiri/controllers/credit"
	orderControllers "github.com/junaidrashid-git/cybereatdiri/controllers/order"
	userControllers "github.com/junaidrashid-git/cybereatdiri/controllers/user"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.Issuer, d.AllowGuests), middleware.AttachTerminal(d.Registry))
	{
		userGroup.GET("/session", userControllers.GetSession()) // GET /user/session

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart())                     // GET /user/cart
			cartGroup.POST("", cartControllers.AddCartItem(d.Catalog))       // POST /user/cart
			cartGroup.DELETE("/:position", cartControllers.RemoveCartItem()) // DELETE /user/cart/:position
			cartGroup.DELETE("", cartControllers.ClearCart())                // DELETE /user/cart
		}

		// ──────────────── Checkout ────────────────
		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.GET("", checkoutControllers.GetCheckout())
			checkoutGroup.POST("", checkoutControllers.BeginCheckout())
			checkoutGroup.POST("/payment", checkoutControllers.ChoosePayment())
			checkoutGroup.POST("/confirm", checkoutControllers.ConfirmCheckout())
			checkoutGroup.POST("/cancel", checkoutControllers.CancelCheckout())
		}

		// ──────────────── Game Credits ────────────────
		creditGroup := userGroup.Group("/credits")
		{
			creditGroup.POST("/:id/purchase", creditControllers.BeginPurchase(d.Catalog))
			creditGroup.POST("/purchase/payment", creditControllers.ChoosePayment())
			creditGroup.POST("/purchase/confirm", creditControllers.ConfirmPurchase())
			creditGroup.POST("/purchase/cancel", creditControllers.CancelPurchase())
		}

		// ──────────────── Order History ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler())
		userGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel())
	}
}

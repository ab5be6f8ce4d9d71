package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/cybereatdiri/controllers/admin"
	orderControllers "github.com/junaidrashid-git/cybereatdiri/controllers/order"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		adminGroup.GET("/users", adminController.GetAllUsers(d.Users, d.Log))
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(d.Registry))
	}
}

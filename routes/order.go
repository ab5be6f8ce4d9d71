package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		// websocket endpoint for real-time order updates, front desk only
		orders.GET("/ws", d.Hub.OrderWebSocketHandler)
	}
}

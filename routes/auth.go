package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/auth"
	"github.com/junaidrashid-git/cybereatdiri/middleware"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignUp(d.Users, d.Metrics))
		authGroup.POST("/login", auth.Login(d.Users, d.Issuer, d.Metrics))
		if d.AllowGuests {
			authGroup.POST("/guest", auth.CreateGuest(d.Issuer))
		}
		authGroup.POST("/logout",
			middleware.ValidateToken(d.Issuer, d.AllowGuests),
			auth.Logout(d.Registry, d.Log),
		)
	}
}

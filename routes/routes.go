package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogControllers "github.com/junaidrashid-git/cybereatdiri/controllers/catalog"
	orderControllers "github.com/junaidrashid-git/cybereatdiri/controllers/order"
	"github.com/junaidrashid-git/cybereatdiri/catalog"
	"github.com/junaidrashid-git/cybereatdiri/kiosk"
	"github.com/junaidrashid-git/cybereatdiri/metrics"
	"github.com/junaidrashid-git/cybereatdiri/session"
	"github.com/junaidrashid-git/cybereatdiri/store"
	"github.com/sirupsen/logrus"
)

// Deps is everything the handlers need, built once in main.
type Deps struct {
	Users       *store.UserStore
	Catalog     *catalog.Catalog
	Registry    *kiosk.Registry
	Issuer      *session.Issuer
	Hub         *orderControllers.Hub
	Metrics     *metrics.Metrics
	Log         logrus.FieldLogger
	AllowGuests bool
	AdminAPIKey string
}

// SetupRoutes is the single entry‐point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	catalogGroup := r.Group("/catalog")
	{
		catalogGroup.GET("/menu", catalogControllers.GetMenu(d.Catalog))
		catalogGroup.GET("/credits", catalogControllers.GetCredits(d.Catalog))
	}

	// 1️⃣ Public Auth routes, plus token-protected logout
	SetupAuthRoutes(r, d)

	// 2️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, d)

	// 3️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, d)

	// order feed
	SetupOrderRoutes(r, d)
}

package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/junaidrashid-git/cybereatdiri/store"
	"github.com/sirupsen/logrus"
)

// GET /admin/users
func GetAllUsers(users *store.UserStore, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := users.List(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("failed to fetch users")
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": all, "count": len(all)})
	}
}
